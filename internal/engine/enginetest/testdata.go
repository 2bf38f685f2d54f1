// Package enginetest holds a small two-file log corpus shared by tests.
package enginetest

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed scanlogs
var scanlogs embed.FS

// Sample corpus facts. Neither file ends with a newline.
const (
	SampleLines = 21 // log1.txt: 11 lines, log2.txt: 10 lines
	Log1Lines   = 11
)

// SampleKeywordLines lists, by load order, the lines of the sample corpus
// that contain a default keyword.
var SampleKeywordLines = []int{5, 8, 17, 20}

// WriteSample copies the sample corpus (including a non-log README.md) into
// dir and returns dir.
func WriteSample(dir string) (string, error) {
	err := fs.WalkDir(scanlogs, "scanlogs", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := scanlogs.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, d.Name()), data, 0o644)
	})
	if err != nil {
		return "", fmt.Errorf("write sample corpus: %w", err)
	}
	return dir, nil
}
