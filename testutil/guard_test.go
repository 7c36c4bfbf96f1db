package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

const testForbiddenImport = "some/forbidden/package"

// TestFacadeImportForbiddenPredicate covers predicate behavior.
func TestFacadeImportForbiddenPredicate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"dslcore/pkg/dsl", true},
		{"example.com/mod/pkg/dsl", true},
		{"example.com/mod/pkg/dsl@v1", true},
		{"example.com/mod/pkg/dslutil", false},
		{"example.com/mod/pkg/cell", false},
		{"dsl/pkg/something", false},
		{"", false},
	}
	for _, c := range cases {
		if got := FacadeImportForbidden(c.in); got != c.want {
			t.Fatalf("FacadeImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestInternalImportForbiddenPredicate(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"example.com/mod/internal/x", true},
		{"dslcore/internal/observe", true},
		{"example.com/some/internal/deep/path", true},
		{"example.com/mod/pkg/x", false},
		{"internal", false},
		{"example.com/internal", false},
		{"notinternal", false},
		{"", false},
	}
	for _, c := range cases {
		if got := InternalImportForbidden(c.in); got != c.want {
			t.Fatalf("InternalImportForbidden(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

// TestAssertNoDirectImports exercises the success path by creating a tiny temp package with safe imports.
func TestAssertNoDirectImports(t *testing.T) {
	dir := t.TempDir()
	src := []byte("package tmp\nimport \"fmt\"\nfunc X(){fmt.Println(1)}")
	if err := os.WriteFile(filepath.Join(dir, "x.go"), src, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	AssertNoDirectImports(t, dir, func(string) bool { return false }, "none")
}

// TestAssertNoDirectImportsIgnoresTestFiles ensures _test.go files never trip the guard
// even when they import something forbidden.
func TestAssertNoDirectImportsIgnoresTestFiles(t *testing.T) {
	dir := t.TempDir()

	src := []byte(`package tmp
import "fmt"
func X() { fmt.Println("test") }`)
	if err := os.WriteFile(filepath.Join(dir, "main.go"), src, 0o600); err != nil {
		t.Fatalf("write main file: %v", err)
	}

	testSrc := []byte(`package tmp
import "testing"
import "` + testForbiddenImport + `"
func TestX(t *testing.T) {}`)
	if err := os.WriteFile(filepath.Join(dir, "main_test.go"), testSrc, 0o600); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	AssertNoDirectImports(t, dir, func(importPath string) bool {
		return importPath == testForbiddenImport
	}, "should ignore test files")
}

// TestAssertNoDirectImportsScopesToOneDirectory ensures subdirectories and non-Go
// files are left alone; the guard is intentionally single-package.
func TestAssertNoDirectImportsScopesToOneDirectory(t *testing.T) {
	dir := t.TempDir()

	subdir := filepath.Join(dir, "subdir")
	if err := os.Mkdir(subdir, 0o750); err != nil {
		t.Fatalf("create subdir: %v", err)
	}
	src := []byte(`package subpkg
import "` + testForbiddenImport + `"
func X() {}`)
	if err := os.WriteFile(filepath.Join(subdir, "sub.go"), src, 0o600); err != nil {
		t.Fatalf("write subdir file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("some text"), 0o600); err != nil {
		t.Fatalf("write txt file: %v", err)
	}
	safeSrc := []byte(`package tmp
import "fmt"
func Y() { fmt.Println("safe") }`)
	if err := os.WriteFile(filepath.Join(dir, "safe.go"), safeSrc, 0o600); err != nil {
		t.Fatalf("write safe file: %v", err)
	}

	AssertNoDirectImports(t, dir, func(importPath string) bool {
		return importPath == testForbiddenImport
	}, "should ignore subdirectories and non-go files")
}

// TestAssertNoDirectImportsParsesGroupedImports covers aliased, dot, and grouped import forms.
func TestAssertNoDirectImportsParsesGroupedImports(t *testing.T) {
	dir := t.TempDir()

	src := []byte(`package tmp
import "fmt"
import (
	"os"
	alias "context"
	. "io"
)
func X() {}`)
	if err := os.WriteFile(filepath.Join(dir, "quotes.go"), src, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	AssertNoDirectImports(t, dir, func(importPath string) bool {
		return importPath == testForbiddenImport
	}, "should handle various import styles")
}

func TestAssertNoDirectImportsWithEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	AssertNoDirectImports(t, dir, func(string) bool { return true }, "should handle empty directory")
}

// TestAssertNoTransitiveDependency runs against the current package with a predicate
// that matches nothing, exercising the go list plumbing end to end.
func TestAssertNoTransitiveDependency(t *testing.T) {
	AssertNoTransitiveDependency(t, ".", func(path string) bool {
		return path == "github.com/some/nonexistent/package"
	}, "should not depend on nonexistent package")
}
