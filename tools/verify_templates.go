package main

import (
	"fmt"
	"os"

	"github.com/phravins/genstudio/internal/project"
	"github.com/phravins/genstudio/internal/templates"
	"github.com/phravins/genstudio/pkg/utils"
)

// Renders every template (built-in plus an optional custom YAML file given as
// the first argument) and checks the generated sources.
func main() {
	fmt.Println("Verifying templates...")

	catalog := templates.Default()
	if len(os.Args) > 1 {
		if !utils.FileExists(os.Args[1]) {
			fmt.Printf("FAILED: %s is not a file\n", os.Args[1])
			os.Exit(1)
		}
		custom, err := templates.LoadCustom(os.Args[1])
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			os.Exit(1)
		}
		catalog.Merge(custom...)
	}

	failed := false
	for _, tpl := range catalog.List() {
		fmt.Printf("Test: %s... ", tpl.Name)
		files, err := project.Render(tpl, "verify-project")
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			failed = true
			continue
		}
		if errs := project.Lint(files); len(errs) > 0 {
			fmt.Println("FAILED")
			for _, err := range errs {
				fmt.Printf("  %v\n", err)
			}
			failed = true
			continue
		}
		fmt.Printf("PASSED (%d files)\n", len(files))
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("All Templates Verified!")
}
