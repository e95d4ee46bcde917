package project

import (
	"encoding/json"
	"fmt"
	"go/parser"
	"go/token"
	"path"
)

// Lint checks that rendered Go sources parse and JSON files are valid.
func Lint(files []File) []error {
	var errs []error
	fset := token.NewFileSet()
	for _, f := range files {
		switch path.Ext(f.Path) {
		case ".go":
			if _, err := parser.ParseFile(fset, f.Path, f.Content, parser.AllErrors); err != nil {
				errs = append(errs, err)
			}
		case ".json":
			if !json.Valid(f.Content) {
				errs = append(errs, fmt.Errorf("%s: invalid JSON", f.Path))
			}
		}
	}
	return errs
}
