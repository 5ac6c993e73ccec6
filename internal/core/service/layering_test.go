package service

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// The core may depend on shared packages under pkg/, never on the adapters
// that sit around it.
func TestCoreDoesNotImportAdapters(t *testing.T) {
	forbidden := []string{
		"github.com/clubhub/clubhub-api/internal/api",
		"github.com/clubhub/clubhub-api/internal/infrastructure",
	}

	for _, dir := range []string{".", "../domain", "../ports"} {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		if err != nil {
			t.Fatalf("glob %s: %v", dir, err)
		}
		for _, file := range files {
			f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("parse %s: %v", file, err)
			}
			for _, imp := range f.Imports {
				path, _ := strconv.Unquote(imp.Path.Value)
				for _, prefix := range forbidden {
					if strings.HasPrefix(path, prefix) {
						t.Errorf("%s imports %s", file, path)
					}
				}
			}
		}
	}
}
