package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/crimson-sun/scanlog/internal/model"
)

type jsonRenderer struct {
	verbosity Verbosity
}

// Render writes rs as one indented JSON document.
func (r *jsonRenderer) Render(w io.Writer, rs model.ResultSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FormatResult(rs, r.verbosity)); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return nil
}
