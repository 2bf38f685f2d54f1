package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/scanlog/internal/model"
)

type yamlRenderer struct {
	verbosity Verbosity
}

// Render writes rs as a YAML document.
func (r *yamlRenderer) Render(w io.Writer, rs model.ResultSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FormatResult(rs, r.verbosity)); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return enc.Close()
}
