// Package ignore filters icon trees with gitignore-style pattern files.
package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// FileName is the ignore file read from the root of a scanned tree.
const FileName = ".iconeatignore"

// Matcher reports whether a path inside a scanned tree is excluded.
type Matcher struct {
	matcher gitignore.Matcher
}

// Load layers the patterns found under root:
// 1. .gitignore files, recursively (foundation)
// 2. root/.iconeatignore (overrides)
func Load(root string) (*Matcher, error) {
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return nil, fmt.Errorf("read ignore patterns in %s: %w", root, err)
	}

	extra, err := readIgnoreFile(filepath.Join(root, FileName))
	if err != nil {
		return nil, err
	}
	for _, line := range extra {
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}

	return &Matcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

func readIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- fixed file name inside the scanned root
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return patterns, nil
}

// Match reports whether rel, a slash separated path relative to the root
// passed to Load, is ignored. A nil Matcher ignores nothing.
func (m *Matcher) Match(rel string, isDir bool) bool {
	if m == nil {
		return false
	}
	parts := splitPath(rel)
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, isDir)
}

// Filter returns the files of rels that are not ignored, keeping their order.
func (m *Matcher) Filter(rels []string) []string {
	if m == nil {
		return rels
	}
	kept := rels[:0:0]
	for _, rel := range rels {
		if !m.Match(rel, false) {
			kept = append(kept, rel)
		}
	}
	return kept
}

func splitPath(path string) []string {
	if path == "" || path == "." {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
