// Package outfile formats and writes generated Go source files.
package outfile

import (
	"fmt"
	"os"

	"golang.org/x/tools/imports"
)

// Format runs goimports-style processing on generated source: gofmt plus
// adding and pruning imports. path only informs import resolution.
func Format(path string, src []byte) ([]byte, error) {
	out, err := imports.Process(path, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", path, err)
	}
	return out, nil
}

// Write formats src and writes it to path. When formatting fails the raw
// source is written anyway so the offending output can be inspected, and the
// formatting error is returned.
func Write(path string, src []byte) error {
	formatted, ferr := Format(path, src)
	if ferr != nil {
		formatted = src
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return ferr
}
