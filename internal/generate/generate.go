/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/fulmenhq/iconeat/pkg/mapping"
	"github.com/fulmenhq/iconeat/pkg/safeio"
	"golang.org/x/sync/errgroup"
)

// Options control the parts of generation shared by every variant.
type Options struct {
	// ThemeTemplate is the index.theme copied into each variant.
	ThemeTemplate string
	SizeFolders   []string
	Workers       int
}

// Result counts what happened to the mapping entries of one variant.
type Result struct {
	Destination string `json:"destination"`
	Written     int    `json:"written"`
	Linked      int    `json:"linked"`
	Skipped     int    `json:"skipped"`
	Missing     int    `json:"missing"`
	Unstyled    int    `json:"unstyled"`
}

// Generator renders theme variants from a mapping document.
type Generator struct {
	doc  *mapping.Document
	opts Options
	log  *logger.Logger
}

// New returns a generator for doc. A nil logger uses the default one.
func New(doc *mapping.Document, opts Options, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Generator{doc: doc, opts: opts, log: log}
}

// Run generates every variant, at most Workers at a time. Results follow the
// order of variants.
func (g *Generator) Run(ctx context.Context, variants []Variant) ([]Result, error) {
	results := make([]Result, len(variants))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, v := range variants {
		eg.Go(func() error {
			res, err := g.Variant(ctx, v)
			if err != nil {
				return fmt.Errorf("%s: %w", v.Destination, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Variant writes one theme below v.Destination.
func (g *Generator) Variant(ctx context.Context, v Variant) (*Result, error) {
	dest := v.Destination
	if v.Overwrite {
		if err := os.RemoveAll(dest); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(dest); err == nil {
		g.log.Info("Destination exists, trying to update", logger.String("destination", dest))
	}

	res := &Result{Destination: dest}
	for _, entry := range g.doc.Keys() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.entry(entry, g.doc.Values(entry), v, res); err != nil {
			return nil, fmt.Errorf("%s: %w", entry, err)
		}
	}

	if err := writeIndexTheme(g.opts.ThemeTemplate, dest, v); err != nil {
		return nil, err
	}
	if err := linkSizes(dest, g.opts.SizeFolders); err != nil {
		return nil, err
	}
	g.log.Info("Variant generated",
		logger.String("destination", dest),
		logger.Int("written", res.Written),
		logger.Int("skipped", res.Skipped),
		logger.Int("missing", res.Missing))
	return res, nil
}

func (g *Generator) entry(entry string, dests []string, v Variant, res *Result) error {
	scalable := filepath.Join(v.Destination, "scalable")
	if len(dests) == 0 || allExist(scalable, dests) {
		g.log.Debug("Skipping, all icons already exist", logger.String("entry", entry))
		res.Skipped++
		return nil
	}

	src := findSource(entry, v.SrcPaths)
	if src == "" {
		g.log.Error("Skipping, icon not found", logger.String("entry", entry), logger.String("destination", v.Destination))
		res.Missing++
		return nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(src); err != nil {
		return fmt.Errorf("parse %s: %w", src, err)
	}
	if err := Transform(doc, v); err != nil {
		if errors.Is(err, ErrNoStyle) {
			g.log.Error("Skipping, icon has no style tag", logger.String("entry", entry), logger.String("file", src))
			res.Unstyled++
			return nil
		}
		return err
	}
	ensureDeclaration(doc)

	primary := svgPath(scalable, dests[0])
	if err := os.MkdirAll(filepath.Dir(primary), 0o755); err != nil {
		return err
	}
	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	if err := safeio.WriteFilePreservePerms(primary, data); err != nil {
		return fmt.Errorf("write %s: %w", primary, err)
	}
	g.log.Debug("Icon written", logger.String("entry", entry), logger.String("source", src), logger.String("file", primary))
	res.Written++

	for _, alias := range dests[1:] {
		if err := linkAlias(primary, svgPath(scalable, alias)); err != nil {
			return err
		}
		res.Linked++
	}
	return nil
}

func svgPath(root, name string) string {
	return filepath.Join(root, filepath.FromSlash(name)+".svg")
}

func allExist(root string, dests []string) bool {
	for _, d := range dests {
		if _, err := os.Stat(svgPath(root, d)); err != nil {
			return false
		}
	}
	return true
}

func findSource(entry string, dirs []string) string {
	for _, dir := range dirs {
		p := filepath.Join(dir, entry+".svg")
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// linkAlias replaces alias with a relative symlink to primary.
func linkAlias(primary, alias string) error {
	if err := os.MkdirAll(filepath.Dir(alias), 0o755); err != nil {
		return err
	}
	rel, err := filepath.Rel(filepath.Dir(alias), primary)
	if err != nil {
		return err
	}
	if err := os.Remove(alias); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.Symlink(rel, alias)
}
