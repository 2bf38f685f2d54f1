package output

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/crimson-sun/scanlog/internal/model"
)

type textRenderer struct {
	verbosity Verbosity
	heading   *color.Color
	alert     *color.Color
	muted     *color.Color
}

func newTextRenderer(opts Options) *textRenderer {
	r := &textRenderer{
		verbosity: opts.Verbosity,
		heading:   color.New(color.FgWhite, color.Bold),
		alert:     color.New(color.FgRed),
		muted:     color.New(color.FgYellow),
	}
	if !opts.Color {
		r.heading.DisableColor()
		r.alert.DisableColor()
		r.muted.DisableColor()
	}
	return r
}

// Render writes the human-readable report: counts, distinct patterns and
// the anomaly table.
func (r *textRenderer) Render(w io.Writer, rs model.ResultSet) error {
	rs = FormatResult(rs, r.verbosity)
	ew := &errWriter{w: w}

	ew.printf("%s %d\n", r.heading.Sprint("Normal entries:"), rs.Stats.Normals)
	abnormal := strconv.Itoa(rs.Stats.Anomalies)
	if rs.Stats.Anomalies > 0 {
		abnormal = r.alert.Sprint(abnormal)
	}
	ew.printf("%s %s\n", r.heading.Sprint("Abnormal entries:"), abnormal)
	if rs.Fallback {
		ew.printf("%s\n", r.muted.Sprint("Statistical detector skipped (insufficient data); keyword rules only."))
	}

	if r.verbosity > Minimal {
		r.patterns(ew, "Normal log patterns:", rs.NormalPatterns)
		r.patterns(ew, "Abnormal log patterns:", rs.AnomalyPatterns)
	}

	ew.printf("\n%s\n", r.heading.Sprint("Anomalies detected with file paths:"))
	if len(rs.Anomalies) == 0 {
		ew.printf("(none)\n")
		return ew.err
	}

	width := r.verbosity.cellWidth()
	tw := tabwriter.NewWriter(ew, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tLOG\tPATH\tREASON")
	for _, a := range rs.Anomalies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			a.Seq,
			Cell(a.Text, width),
			Truncate(a.SourcePath, width),
			Reason(a.Verdict),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return ew.err
}

func (r *textRenderer) patterns(ew *errWriter, title string, patterns []string) {
	ew.printf("\n%s\n", r.heading.Sprint(title))
	if len(patterns) == 0 {
		ew.printf("(none)\n")
		return
	}
	width := r.verbosity.cellWidth()
	for _, p := range patterns {
		ew.printf("  \"%s\"\n", Cell(p, width))
	}
}

// errWriter remembers the first write error so rendering code can print
// unconditionally and check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
