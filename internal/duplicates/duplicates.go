/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package duplicates

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/iconeat/pkg/ignore"
	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/fulmenhq/iconeat/pkg/safeio"
	"github.com/mattn/go-runewidth"
)

// Duplicate is an icon present at the same relative path in both trees.
type Duplicate struct {
	Path        string `json:"path"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	SourceSize  int64  `json:"source_size"`
	TargetSize  int64  `json:"target_size"`
	SameContent bool   `json:"same_content"`
}

// SameSize reports whether both copies have the same byte length.
func (d Duplicate) SameSize() bool {
	return d.SourceSize == d.TargetSize
}

// Report holds every duplicate found, sorted by relative path.
type Report struct {
	Duplicates []Duplicate `json:"duplicates"`
	Removed    []string    `json:"removed,omitempty"`
}

// Clean reports whether no icon exists in both trees.
func (r *Report) Clean() bool {
	return len(r.Duplicates) == 0
}

// Find lists the SVG icons under src that also exist under target. Each
// tree honours its own .iconeatignore and .gitignore files.
func Find(src, target string) (*Report, error) {
	srcFiles, err := svgTree(src)
	if err != nil {
		return nil, err
	}
	targetFiles, err := svgTree(target)
	if err != nil {
		return nil, err
	}
	inTarget := make(map[string]struct{}, len(targetFiles))
	for _, p := range targetFiles {
		inTarget[p] = struct{}{}
	}

	report := &Report{}
	for _, rel := range srcFiles {
		if _, ok := inTarget[rel]; !ok {
			continue
		}
		d, err := compare(src, target, rel)
		if err != nil {
			return nil, err
		}
		report.Duplicates = append(report.Duplicates, d)
	}
	sort.Slice(report.Duplicates, func(i, j int) bool {
		return report.Duplicates[i].Path < report.Duplicates[j].Path
	})
	return report, nil
}

func svgTree(root string) ([]string, error) {
	if st, err := os.Stat(root); err != nil {
		return nil, err
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}
	files, err := doublestar.Glob(os.DirFS(root), "**/*.svg", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	skip, err := ignore.Load(root)
	if err != nil {
		return nil, err
	}
	return skip.Filter(files), nil
}

func compare(src, target, rel string) (Duplicate, error) {
	d := Duplicate{
		Path:   rel,
		Source: filepath.Join(src, filepath.FromSlash(rel)),
		Target: filepath.Join(target, filepath.FromSlash(rel)),
	}
	ss, err := os.Stat(d.Source)
	if err != nil {
		return d, err
	}
	ts, err := os.Stat(d.Target)
	if err != nil {
		return d, err
	}
	d.SourceSize, d.TargetSize = ss.Size(), ts.Size()
	if d.SameSize() {
		same, err := safeio.SameContent(d.Source, d.Target)
		if err != nil {
			return d, err
		}
		d.SameContent = same
	}
	return d, nil
}

// Remove deletes every target copy whose content matches its source.
func Remove(report *Report, log *logger.Logger) error {
	if log == nil {
		log = logger.Default()
	}
	for _, d := range report.Duplicates {
		if !d.SameContent {
			continue
		}
		if err := os.Remove(d.Target); err != nil {
			return fmt.Errorf("remove %s: %w", d.Target, err)
		}
		log.Debug("Removed duplicate icon", logger.String("path", d.Target))
		report.Removed = append(report.Removed, d.Target)
	}
	return nil
}

// Render writes one aligned line per duplicate.
func (r *Report) Render(w io.Writer) error {
	if r.Clean() {
		_, err := fmt.Fprintln(w, "No duplicates found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Following potential duplicate icons were found:"); err != nil {
		return err
	}
	srcWidth, targetWidth := 0, 0
	for _, d := range r.Duplicates {
		srcWidth = max(srcWidth, runewidth.StringWidth(d.Source))
		targetWidth = max(targetWidth, runewidth.StringWidth(d.Target))
	}
	for _, d := range r.Duplicates {
		var detail string
		switch {
		case !d.SameSize():
			detail = fmt.Sprintf("size different (%d -> %d)", d.SourceSize, d.TargetSize)
		case d.SameContent:
			detail = "size same; content same"
		default:
			detail = "size same; content different"
		}
		_, err := fmt.Fprintf(w, "%s -> %s  %s\n",
			runewidth.FillRight(d.Source, srcWidth),
			runewidth.FillRight(d.Target, targetWidth),
			detail)
		if err != nil {
			return err
		}
	}
	return nil
}
