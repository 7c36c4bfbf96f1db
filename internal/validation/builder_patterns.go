// Package validation provides static pattern validation for builder code.
//
// Builder configure blocks passed to dsl.Build are a usage convention, not a
// compiler-enforced scope: Go cannot stop a configure block from starting a
// second build or from locking a builder by hand. The checks in this package
// catch those patterns at lint time.
package validation

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

// Error represents a builder pattern violation found in code.
type Error struct {
	File    string
	Line    int
	Message string
	Code    string
}

const facadeImportPath = "dslcore/pkg/dsl"

// ValidateBuilderDirectory validates all Go files in a directory tree for
// builder pattern compliance. Test files are skipped.
func ValidateBuilderDirectory(dir string) []Error {
	var errors []Error

	err := filepath.Walk(dir, func(path string, _ os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		errors = append(errors, validateBuilderFile(path)...)
		return nil
	})

	if err != nil {
		errors = append(errors, Error{
			File:    dir,
			Line:    0,
			Message: "Failed to walk directory: " + err.Error(),
		})
	}

	return errors
}

func validateBuilderFile(filePath string) []Error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filePath, nil, parser.ParseComments)
	if err != nil {
		// Unparseable files are the compiler's problem, not ours.
		return nil
	}

	alias, imported := facadeAlias(file)
	if !imported {
		return nil
	}

	var errors []Error
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || !isBuildCall(call, alias) {
			return true
		}
		if configure := configureBlock(call); configure != nil {
			errors = append(errors, validateConfigureBlock(fset, configure, alias)...)
		}
		// The configure block has been validated; do not descend into the
		// same call again.
		return false
	})

	return errors
}

// facadeAlias resolves the local name the facade package is imported under.
// A dot import yields the empty alias.
func facadeAlias(file *ast.File) (string, bool) {
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, "\"")
		if path != facadeImportPath {
			continue
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" {
				return "", false
			}
			if imp.Name.Name == "." {
				return "", true
			}
			return imp.Name.Name, true
		}
		return "dsl", true
	}
	return "", false
}

func isBuildCall(call *ast.CallExpr, alias string) bool {
	fun := call.Fun
	// Generic instantiation appears as an index expression around the
	// function; unwrap it.
	switch indexed := fun.(type) {
	case *ast.IndexExpr:
		fun = indexed.X
	case *ast.IndexListExpr:
		fun = indexed.X
	}
	if alias == "" {
		ident, ok := fun.(*ast.Ident)
		return ok && ident.Name == "Build"
	}
	sel, ok := fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Build" {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	return ok && ident.Name == alias
}

func configureBlock(call *ast.CallExpr) *ast.FuncLit {
	if len(call.Args) < 2 {
		return nil
	}
	lit, ok := call.Args[1].(*ast.FuncLit)
	if !ok {
		return nil
	}
	return lit
}

func validateConfigureBlock(fset *token.FileSet, configure *ast.FuncLit, alias string) []Error {
	var errors []Error
	ast.Inspect(configure.Body, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if isBuildCall(call, alias) {
			pos := fset.Position(call.Pos())
			errors = append(errors, Error{
				File:    pos.Filename,
				Line:    pos.Line,
				Message: "Nested build inside a configure block; finish the outer build first",
				Code:    "dsl.Build(...) inside configure",
			})
			return false
		}
		if isLockCall(call) {
			pos := fset.Position(call.Pos())
			errors = append(errors, Error{
				File:    pos.Filename,
				Line:    pos.Line,
				Message: "Manual Lock() inside a configure block; Build locks the builder on success",
				Code:    "builder.Lock() inside configure",
			})
		}
		return true
	})
	return errors
}

func isLockCall(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	return ok && sel.Sel.Name == "Lock" && len(call.Args) == 0
}
