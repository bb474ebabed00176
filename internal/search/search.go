/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package search

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/go-ini/ini"
	"golang.org/x/text/cases"
)

// ContextFolders maps freedesktop icon contexts (and desktop entry types) to
// the folder names used as mapping key prefixes.
var ContextFolders = map[string]string{
	"Actions":      "actions",
	"Application":  "apps",
	"Applications": "apps",
	"Categories":   "categories",
	"Devices":      "devices",
	"Emblems":      "emblems",
	"Emotes":       "emotes",
	"MimeTypes":    "mimetypes",
	"Places":       "places",
	"Status":       "status",
}

var iniOptions = ini.LoadOptions{
	Loose:                   true,
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	SkipUnrecognizableLines: true,
}

// Options selects where installed icons and desktop files are searched.
type Options struct {
	// IconRoots are scanned for */index.theme files.
	IconRoots []string
	// HicolorRoot is scanned as <size>/<folder> without a theme file.
	HicolorRoot  string
	DesktopRoots []string
}

// Results maps "folder/name" mapping keys to the files they were found in.
type Results map[string][]string

func (r Results) add(key, path string) {
	r[key] = append(r[key], path)
}

// Keys returns the result keys in ascending order.
func (r Results) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns the union of both result sets.
func Merge(a, b Results) Results {
	out := Results{}
	for _, src := range []Results{a, b} {
		for k, paths := range src {
			out[k] = append(out[k], paths...)
		}
	}
	return out
}

// Render writes the sorted keys, followed by their sorted paths when verbose.
func (r Results) Render(w io.Writer, verbose bool) error {
	for _, key := range r.Keys() {
		if !verbose {
			if _, err := fmt.Fprintln(w, key); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s found in:\n", key); err != nil {
			return err
		}
		paths := slices.Clone(r[key])
		slices.Sort(paths)
		for _, p := range paths {
			if _, err := fmt.Fprintf(w, "\t%s\n", p); err != nil {
				return err
			}
		}
	}
	return nil
}

type iconDir struct {
	path   string
	folder string
}

// Icons finds installed icon files whose name contains appname.
func Icons(appname string, opts Options) (Results, error) {
	var dirs []iconDir
	for _, root := range opts.IconRoots {
		found, err := themeDirs(root)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, found...)
	}
	if opts.HicolorRoot != "" {
		found, err := hicolorDirs(opts.HicolorRoot)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, found...)
	}

	results := Results{}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir.path)
		if err != nil {
			logger.Debug("Skipping unreadable icon directory", logger.String("dir", dir.path), logger.Err(err))
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.Contains(e.Name(), appname) {
				continue
			}
			stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			stem = strings.TrimSuffix(stem, "-symbolic")
			results.add(dir.folder+"/"+stem, filepath.Join(dir.path, e.Name()))
		}
	}
	return results, nil
}

// themeDirs lists the context directories declared by every index.theme
// directly below root. Symlinked directories are skipped so themes that link
// one context to another do not report every icon twice.
func themeDirs(root string) ([]iconDir, error) {
	themes, err := doublestar.Glob(os.DirFS(root), "*/index.theme", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	var dirs []iconDir
	for _, rel := range themes {
		themeFile := filepath.Join(root, filepath.FromSlash(rel))
		cfg, err := ini.LoadSources(iniOptions, themeFile)
		if err != nil {
			logger.Debug("Skipping unreadable theme file", logger.String("file", themeFile), logger.Err(err))
			continue
		}
		theme, err := cfg.GetSection("Icon Theme")
		if err != nil || !theme.HasKey("Directories") {
			continue
		}
		for _, dir := range theme.Key("Directories").Strings(",") {
			section, err := cfg.GetSection(dir)
			if err != nil || !section.HasKey("Context") {
				continue
			}
			folder, ok := ContextFolders[section.Key("Context").String()]
			if !ok {
				continue
			}
			dirPath := filepath.Join(filepath.Dir(themeFile), filepath.FromSlash(dir))
			if !realDir(dirPath) || isSymlink(filepath.Dir(dirPath)) {
				continue
			}
			dirs = append(dirs, iconDir{path: dirPath, folder: folder})
		}
	}
	return dirs, nil
}

func hicolorDirs(root string) ([]iconDir, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "*/*")
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	var dirs []iconDir
	for _, rel := range matches {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if st, err := os.Stat(p); err != nil || !st.IsDir() {
			continue
		}
		folder := filepath.Base(p)
		if !knownFolder(folder) {
			continue
		}
		dirs = append(dirs, iconDir{path: p, folder: folder})
	}
	return dirs, nil
}

func knownFolder(name string) bool {
	for _, f := range ContextFolders {
		if f == name {
			return true
		}
	}
	return false
}

func realDir(p string) bool {
	st, err := os.Lstat(p)
	return err == nil && st.IsDir()
}

func isSymlink(p string) bool {
	st, err := os.Lstat(p)
	return err == nil && st.Mode()&fs.ModeSymlink != 0
}

// DesktopFiles finds .desktop files whose file name contains appname, ignoring
// case, and maps their Icon to a key using the entry Type.
func DesktopFiles(appname string, roots []string) (Results, error) {
	fold := cases.Fold()
	needle := fold.String(appname)

	results := Results{}
	for _, root := range roots {
		files, err := doublestar.Glob(os.DirFS(root), "**/*.desktop", doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
		for _, rel := range files {
			if !strings.Contains(fold.String(filepath.Base(rel)), needle) {
				continue
			}
			path := filepath.Join(root, filepath.FromSlash(rel))
			key, ok := desktopKey(path)
			if !ok {
				continue
			}
			results.add(key, path)
		}
	}
	return results, nil
}

func desktopKey(path string) (string, bool) {
	cfg, err := ini.LoadSources(iniOptions, path)
	if err != nil {
		logger.Debug("Skipping unreadable desktop file", logger.String("file", path), logger.Err(err))
		return "", false
	}
	entry, err := cfg.GetSection("Desktop Entry")
	if err != nil || !entry.HasKey("Icon") || !entry.HasKey("Type") {
		return "", false
	}
	icon := entry.Key("Icon").String()
	folder, ok := ContextFolders[entry.Key("Type").String()]
	if !ok || icon == "" || strings.Contains(icon, "/") {
		return "", false
	}
	return folder + "/" + icon, true
}
