// builder-check validates builder code against the configure block
// conventions: no nested builds and no manual locking inside a configure
// block passed to dsl.Build.
package main

import (
	"fmt"
	"io"
	"os"

	"dslcore/internal/validation"
)

func main() {
	os.Exit(run(os.Args, os.Stderr, validation.ValidateBuilderDirectory))
}

func run(args []string, stderr io.Writer, validate func(string) []validation.Error) int {
	if len(args) < 2 {
		progName := "builder-check"
		if len(args) > 0 {
			progName = args[0]
		}
		if _, err := fmt.Fprintf(stderr, "Usage: %s <directory>\n", progName); err != nil {
			return 1
		}
		return 1
	}

	dir := args[1]
	if errors := validate(dir); len(errors) > 0 {
		if _, err := fmt.Fprintf(stderr, "Found %d builder pattern violations:\n\n", len(errors)); err != nil {
			return 1
		}
		for _, violation := range errors {
			if _, writeErr := fmt.Fprintf(stderr, "%s:%d\n", violation.File, violation.Line); writeErr != nil {
				return 1
			}
			if _, writeErr := fmt.Fprintf(stderr, "   %s\n", violation.Message); writeErr != nil {
				return 1
			}
			if violation.Code != "" {
				if _, writeErr := fmt.Fprintf(stderr, "   Code: %s\n", violation.Code); writeErr != nil {
					return 1
				}
			}
			if _, writeErr := fmt.Fprintln(stderr); writeErr != nil {
				return 1
			}
		}
		return 1
	}
	return 0
}
