package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// ScaffoldOptions are the answers that shape a new project
type ScaffoldOptions struct {
	ProjectName string
	SourceDir   string
	Targets     []TargetConfig
}

const sampleSchema = `rootPath = /%s;

create enum Status<Enums>(
    Active,
    Inactive,
);

create schema User<Entities>(
    Id: Uid;
    Name: string;
    Status: Status;
    Tags: Array<string>?;
);
`

const defaultIgnoreFile = `# Schema files excluded from builds
# One glob pattern per line, relative to the source directory
`

// Prompt interactively collects scaffold options
func Prompt(defaultName string) (*ScaffoldOptions, error) {
	opts := &ScaffoldOptions{}

	questions := []*survey.Question{
		{
			Name: "projectName",
			Prompt: &survey.Input{
				Message: "Project name:",
				Default: defaultName,
			},
			Validate: survey.Required,
		},
		{
			Name: "sourceDir",
			Prompt: &survey.Input{
				Message: "Schema source directory:",
				Default: "schemas",
			},
			Validate: survey.Required,
		},
	}
	if err := survey.Ask(questions, opts); err != nil {
		return nil, err
	}

	var languages []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Generation targets:",
		Options: []string{"c#", "typescript"},
		Default: []string{"c#", "typescript"},
	}, &languages, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}

	for _, lang := range languages {
		dir := ""
		if err := survey.AskOne(&survey.Input{
			Message: fmt.Sprintf("Output directory for %s:", lang),
			Default: filepath.Join("generated", sanitizeDirName(lang)),
		}, &dir, survey.WithValidator(survey.Required)); err != nil {
			return nil, err
		}
		opts.Targets = append(opts.Targets, TargetConfig{Language: lang, Output: dir})
	}

	return opts, nil
}

// Scaffold creates the project layout: typegen.yaml, the source
// directory with a sample schema, and the ignore file.
func Scaffold(dir string, opts *ScaffoldOptions) error {
	sourceDir := filepath.Join(dir, opts.SourceDir)
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", sourceDir, err)
	}

	var config strings.Builder
	fmt.Fprintf(&config, "project_name: %s\n", opts.ProjectName)
	fmt.Fprintf(&config, "source_dir: %s\n", opts.SourceDir)
	config.WriteString("targets:\n")
	for _, t := range opts.Targets {
		fmt.Fprintf(&config, "  - language: %q\n    output: %s\n", t.Language, filepath.ToSlash(t.Output))
	}

	files := map[string]string{
		filepath.Join(dir, "typegen.yaml"):           config.String(),
		filepath.Join(sourceDir, "main.tgs"):         fmt.Sprintf(sampleSchema, opts.ProjectName),
		filepath.Join(sourceDir, IgnoreFileName):     defaultIgnoreFile,
	}

	for path, content := range files {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// sanitizeDirName makes a target language usable as a directory name
func sanitizeDirName(lang string) string {
	return strings.NewReplacer("#", "sharp", " ", "-").Replace(lang)
}
