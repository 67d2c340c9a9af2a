// Package noglobalstore defines an analyzer that reports package-level map
// variables. Application state belongs in store objects that are created at
// startup and passed to their users.
package noglobalstore

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer reports package-level variables whose type is a map.
var Analyzer = &analysis.Analyzer{
	Name: "noglobalstore",
	Doc:  "prohibits package-level map variables outside tests",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		filename := pass.Fset.File(file.Pos()).Name()
		if strings.HasSuffix(filename, "_test.go") {
			continue
		}

		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.VAR {
				continue
			}

			for _, spec := range gen.Specs {
				valueSpec, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for _, name := range valueSpec.Names {
					if name.Name == "_" {
						continue
					}
					obj := pass.TypesInfo.Defs[name]
					if obj == nil {
						continue
					}
					if _, isMap := obj.Type().Underlying().(*types.Map); isMap {
						pass.Reportf(name.Pos(), "package-level map %s: keep state in a store object", name.Name)
					}
				}
			}
		}
	}

	return nil, nil
}
