package project

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFileName lists patterns of source files excluded from builds
const IgnoreFileName = ".typegenignore"

// DiscoverSources walks sourceDir and returns every .tgs file, honoring
// the project's ignore file. Paths are returned in walk order, which is
// deterministic.
func DiscoverSources(sourceDir string) ([]string, error) {
	ignored, err := loadIgnorePatterns(filepath.Join(sourceDir, IgnoreFileName))
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tgs") {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		if matchesAny(filepath.ToSlash(rel), ignored) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", sourceDir, err)
	}
	return files, nil
}

// loadIgnorePatterns reads the ignore file; a missing file is fine
func loadIgnorePatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, scanner.Err()
}

// matchesAny checks a relative path against the ignore patterns. A
// pattern matches the file name, the whole relative path, or a leading
// directory.
func matchesAny(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if strings.HasPrefix(rel, strings.TrimSuffix(pattern, "/")+"/") {
			return true
		}
	}
	return false
}
