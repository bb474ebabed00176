/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package colorsync

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/iconeat/pkg/ignore"
	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/fulmenhq/iconeat/pkg/safeio"
)

// Style names one half of the icon pair.
type Style string

const (
	Black Style = "black"
	White Style = "white"
)

// ErrMissingFolder is returned when either half of the pair does not exist.
var ErrMissingFolder = errors.New("icon folder not found")

// Longer colours come first so "#000000" is never rewritten as "#fff000".
var recolor = map[Style]*strings.Replacer{
	Black: strings.NewReplacer("#000000", "#ffffff", "#000", "#fff"),
	White: strings.NewReplacer("#ffffff", "#000000", "#FFFFFF", "#000000", "#fff", "#000", "#FFF", "#000"),
}

// Report lists the icons present in only one half of the pair.
type Report struct {
	OnlyWhite []string `json:"only_white"`
	OnlyBlack []string `json:"only_black"`
	// Copied holds the destination paths written when fixing.
	Copied []string `json:"copied,omitempty"`
}

// Valid reports whether both folders held the same icon names before any fix.
func (r *Report) Valid() bool {
	return len(r.OnlyWhite) == 0 && len(r.OnlyBlack) == 0
}

// Check compares folder/black and folder/white. With fix set, each icon
// missing from one side is copied over with its colours inverted. Icons
// matched by folder/.iconeatignore or a .gitignore are left out.
func Check(folder string, fix bool, log *logger.Logger) (*Report, error) {
	if log == nil {
		log = logger.Default()
	}
	for _, style := range []Style{White, Black} {
		if st, err := os.Stat(filepath.Join(folder, string(style))); err != nil || !st.IsDir() {
			return nil, fmt.Errorf("%w: the '%s' folder could not be found in %s", ErrMissingFolder, style, folder)
		}
	}

	skip, err := ignore.Load(folder)
	if err != nil {
		return nil, err
	}
	black, err := svgNames(folder, Black, skip)
	if err != nil {
		return nil, err
	}
	white, err := svgNames(folder, White, skip)
	if err != nil {
		return nil, err
	}

	report := &Report{
		OnlyWhite: difference(white, black),
		OnlyBlack: difference(black, white),
	}
	if len(report.OnlyWhite) > 0 {
		log.Error("The following files are only in the 'white' folder", logger.Strings("files", report.OnlyWhite))
	}
	if len(report.OnlyBlack) > 0 {
		log.Error("The following files are only in the 'black' folder", logger.Strings("files", report.OnlyBlack))
	}

	if !fix {
		return report, nil
	}
	for _, name := range report.OnlyWhite {
		dest := filepath.Join(folder, string(Black), name)
		if err := CopyRecolored(filepath.Join(folder, string(White), name), dest, White); err != nil {
			return report, err
		}
		report.Copied = append(report.Copied, dest)
	}
	for _, name := range report.OnlyBlack {
		dest := filepath.Join(folder, string(White), name)
		if err := CopyRecolored(filepath.Join(folder, string(Black), name), dest, Black); err != nil {
			return report, err
		}
		report.Copied = append(report.Copied, dest)
	}
	if len(report.Copied) > 0 {
		log.Info("Copied missing icons", logger.Int("count", len(report.Copied)))
	}
	return report, nil
}

// CopyRecolored copies src to dest, swapping black and white according to
// the style of src.
func CopyRecolored(src, dest string, srcStyle Style) error {
	r, ok := recolor[srcStyle]
	if !ok {
		return fmt.Errorf("unknown icon style %q", srcStyle)
	}
	data, err := os.ReadFile(src) // #nosec G304 -- icon inside the selected folder
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := safeio.WriteFilePreservePerms(dest, []byte(r.Replace(string(data)))); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

func svgNames(folder string, style Style, skip *ignore.Matcher) ([]string, error) {
	dir := filepath.Join(folder, string(style))
	names, err := doublestar.Glob(os.DirFS(dir), "*.svg", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	kept := names[:0]
	for _, name := range names {
		if !skip.Match(path.Join(string(style), name), false) {
			kept = append(kept, name)
		}
	}
	return kept, nil
}

// difference returns the sorted names in a that are missing from b.
func difference(a, b []string) []string {
	present := make(map[string]struct{}, len(b))
	for _, name := range b {
		present[name] = struct{}{}
	}
	var out []string
	for _, name := range a {
		if _, ok := present[name]; !ok {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}
