package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// historyDir and historyFile locate the build history inside a project
const (
	historyDir  = ".typegen"
	historyFile = "history.json"
)

// History records the output of the previous successful build so the
// next one can delete files that are no longer generated.
type History struct {
	BuildID   string    `json:"build_id"`
	Timestamp time.Time `json:"timestamp"`
	Files     []string  `json:"files"`
}

// LoadHistory reads the previous build record; a missing record yields
// an empty history, not an error.
func LoadHistory(projectDir string) (*History, error) {
	data, err := os.ReadFile(filepath.Join(projectDir, historyDir, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &History{}, nil
		}
		return nil, fmt.Errorf("failed to read build history: %w", err)
	}

	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("corrupt build history: %w", err)
	}
	return &h, nil
}

// SaveHistory writes the record of a successful build
func SaveHistory(projectDir string, files []string) error {
	h := History{
		BuildID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Files:     files,
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Join(projectDir, historyDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return os.WriteFile(filepath.Join(dir, historyFile), data, 0o644)
}

// Stale returns the files recorded by the previous build that the
// current build no longer produces.
func (h *History) Stale(current []string) []string {
	produced := make(map[string]bool, len(current))
	for _, f := range current {
		produced[f] = true
	}

	var stale []string
	for _, f := range h.Files {
		if !produced[f] {
			stale = append(stale, f)
		}
	}
	return stale
}
