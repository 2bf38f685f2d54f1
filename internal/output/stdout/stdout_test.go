package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/scanlog/internal/model"
	"github.com/crimson-sun/scanlog/internal/output"
)

func testResult() model.ResultSet {
	return model.ResultSet{
		Anomalies: []model.ClassifiedLine{{
			LogLine: model.LogLine{Text: "error SIG11", SourcePath: "logs/b.txt", Seq: 9},
			Verdict: model.Verdict{KeywordFlagged: true, Keyword: "error"},
		}},
		Stats: model.Stats{Total: 10, Normals: 9, Anomalies: 1, KeywordOnly: 1},
	}
}

func renderer(t *testing.T, f output.Format) output.Renderer {
	t.Helper()
	r, err := output.NewRenderer(f, output.Options{Verbosity: output.Standard})
	require.NoError(t, err)
	return r
}

// captureStdout redirects os.Stdout to capture output.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestOutputDefaultsToStdout(t *testing.T) {
	got := captureStdout(t, func() {
		out := New(renderer(t, output.FormatText))
		require.NoError(t, out.Write(context.Background(), testResult()))
		require.NoError(t, out.Close())
	})

	assert.Contains(t, got, "Abnormal entries: 1")
	assert.Contains(t, got, `error SIG11`)
}

func TestOutputWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	out := New(renderer(t, output.FormatJSON), WithWriter(&buf))
	require.NoError(t, out.Write(context.Background(), testResult()))

	var got model.ResultSet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testResult(), got)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestOutputWriteError(t *testing.T) {
	out := New(renderer(t, output.FormatJSON), WithWriter(failWriter{}))
	err := out.Write(context.Background(), testResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdout output")
}
