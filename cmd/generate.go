/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/fulmenhq/iconeat/internal/generate"
	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/fulmenhq/iconeat/pkg/mapping"
	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build theme variants from the source icons",
		Long: `Generate reads a TOML file with one table per destination directory and
writes each variant: restyled SVGs for every mapping entry, relative links for
the entry's other names, index.theme and the size folder links.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	cmd.Flags().StringP("config-file", "c", "generate.toml", "Generator config to read")
	cmd.Flags().String("mapping", "mapping.yaml", "Mapping file to generate from")
	cmd.Flags().String("theme-template", "index.theme", "index.theme copied into every variant")
	cmd.Flags().Int("workers", 4, "Variants generated concurrently")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, map[string]string{
		"generate.config_file":    "config-file",
		"generate.theme_template": "theme-template",
		"generate.workers":        "workers",
		"mapping.file":            "mapping",
	})
	if err != nil {
		return err
	}

	variants, err := generate.LoadConfig(cfg.Generate.ConfigFile)
	if err != nil {
		return &configError{err: err}
	}

	f, err := os.Open(cfg.Mapping.File)
	if err != nil {
		return fmt.Errorf("open mapping: %w", err)
	}
	defer func() { _ = f.Close() }()
	doc, err := mapping.Load(f)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Mapping.File, err)
	}

	gen := generate.New(doc, generate.Options{
		ThemeTemplate: cfg.Generate.ThemeTemplate,
		SizeFolders:   cfg.Generate.SizeFolders,
		Workers:       cfg.Generate.Workers,
	}, logger.Default())

	results, err := gen.Run(cmd.Context(), variants)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d written, %d linked, %d up to date, %d missing, %d without style\n",
			r.Destination, r.Written, r.Linked, r.Skipped, r.Missing, r.Unstyled)
	}
	return nil
}
