package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cakeruu/typegen/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new typegen project in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		opts, err := project.Prompt(filepath.Base(cwd))
		if err != nil {
			return err
		}

		if err := project.Scaffold(".", opts); err != nil {
			return err
		}

		fmt.Printf("Created project %s\n", opts.ProjectName)
		fmt.Printf("  %s/main.tgs  - sample schema\n", opts.SourceDir)
		fmt.Println("  typegen.yaml - project configuration")
		fmt.Println("\nRun 'typegen build' to generate code.")
		return nil
	},
}
