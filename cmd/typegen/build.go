package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cakeruu/typegen/compiler/codegen"
	"github.com/cakeruu/typegen/compiler/diag"
	"github.com/cakeruu/typegen/compiler/lexer"
	"github.com/cakeruu/typegen/compiler/parser"
	"github.com/cakeruu/typegen/compiler/resolver"
	"github.com/cakeruu/typegen/internal/cli/ui"
	"github.com/cakeruu/typegen/internal/project"
)

var buildVerbose bool

func init() {
	buildCmd.Flags().BoolVar(&buildVerbose, "verbose", false, "Show detailed build output")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile all schema files and generate target source code",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(".", os.Stdout)
	},
}

// runBuild executes the whole pipeline for the project at dir. Watch
// mode reuses it for every rebuild.
func runBuild(dir string, out io.Writer) error {
	start := time.Now()

	cfg, err := project.LoadConfig(dir)
	if err != nil {
		return err
	}
	sourceDir := filepath.Join(dir, cfg.SourceDir)

	sources, err := project.DiscoverSources(sourceDir)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no .tgs files found in %s", sourceDir)
	}

	parsed, failed, err := parseAll(sources, out)
	if err != nil {
		return err
	}
	// One bad file blocks the whole build: cross-file resolution only
	// runs on a program whose every file parsed cleanly.
	if failed > 0 {
		return fmt.Errorf("build failed: %d file(s) had errors", failed)
	}

	if err := resolver.Resolve(parsed, sourceDir); err != nil {
		ui.PrintFatal(out, err)
		return fmt.Errorf("build failed")
	}

	targets := make([]codegen.Target, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		backend, err := codegen.ForTarget(t.Language)
		if err != nil {
			return err
		}
		targets = append(targets, codegen.Target{
			Backend:    backend,
			OutputRoot: filepath.Join(dir, t.Output),
		})
	}

	generated, err := codegen.Generate(parsed, targets)
	if err != nil {
		ui.PrintFatal(out, err)
		return fmt.Errorf("build failed")
	}

	written := make([]string, 0, len(generated))
	for _, g := range generated {
		if err := os.MkdirAll(filepath.Dir(g.Path), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(g.Path), err)
		}
		if err := os.WriteFile(g.Path, []byte(g.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", g.Path, err)
		}
		if buildVerbose {
			ui.PrintInfo(out, "wrote %s", g.Path)
		}
		written = append(written, g.Path)
	}

	if err := cleanupStale(dir, written, out); err != nil {
		return err
	}

	ui.PrintSuccess(out, len(parsed), len(written))
	if buildVerbose {
		ui.PrintInfo(out, "build took %s", time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// parseAll lexes and parses every source file, printing diagnostics as
// it goes. It returns the parsed files and how many files failed.
func parseAll(sources []string, out io.Writer) ([]*parser.SchemaFile, int, error) {
	parsed := make([]*parser.SchemaFile, 0, len(sources))
	failed := 0

	for _, path := range sources {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
		}

		tokens, lexErrors := lexer.New(string(source), path).ScanTokens()
		if len(lexErrors) > 0 {
			// Lexical errors are fatal for this file; report them in
			// the same shape as parser diagnostics
			var diags diag.List
			for _, lexErr := range lexErrors {
				diags = append(diags, diag.New(path, lexErr.Line, lexErr.Column, lexErr.Message))
			}
			ui.PrintDiagnostics(out, path, diags)
			failed++
			continue
		}

		file, diags := parser.Parse(tokens, path)
		if diags.HasErrors() {
			ui.PrintDiagnostics(out, path, diags)
			failed++
			continue
		}
		parsed = append(parsed, file)
	}

	return parsed, failed, nil
}

// cleanupStale deletes files the previous build generated but this one
// did not, then records the new file list.
func cleanupStale(dir string, written []string, out io.Writer) error {
	history, err := project.LoadHistory(dir)
	if err != nil {
		return err
	}

	stale := history.Stale(written)
	for _, path := range stale {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove stale file %s: %w", path, err)
		}
	}
	ui.PrintCleaned(out, stale)

	return project.SaveHistory(dir, written)
}
