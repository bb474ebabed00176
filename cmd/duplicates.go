/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"errors"

	"github.com/fulmenhq/iconeat/internal/duplicates"
	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/spf13/cobra"
)

func newDuplicatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Find icons present in two source trees",
		Long: `Duplicates lists every SVG that exists at the same relative path below
both --src-folder and --target-folder, with whether size and content match.
With --fix, target copies identical to their source are deleted. Any
duplicate makes the command fail.`,
		Args: cobra.NoArgs,
		RunE: runDuplicates,
	}
	cmd.Flags().Bool("fix", false, "Delete target icons identical to the source")
	cmd.Flags().String("src-folder", "", "Folder containing the source icons")
	cmd.Flags().String("target-folder", "", "Folder checked for copies of the source icons")
	cmd.Flags().Bool("report-json", false, "Print the report as JSON")
	return cmd
}

func runDuplicates(cmd *cobra.Command, _ []string) error {
	fix, _ := cmd.Flags().GetBool("fix")
	asJSON, _ := cmd.Flags().GetBool("report-json")
	cfg, err := loadConfig(cmd, map[string]string{
		"duplicates.src":    "src-folder",
		"duplicates.target": "target-folder",
	})
	if err != nil {
		return err
	}
	if cfg.Duplicates.Src == "" || cfg.Duplicates.Target == "" {
		return &configError{err: errors.New("both --src-folder and --target-folder are required")}
	}

	report, err := duplicates.Find(cfg.Duplicates.Src, cfg.Duplicates.Target)
	if err != nil {
		return err
	}
	if report.Clean() {
		logger.Info("No duplicates found.")
	}
	if fix {
		if err := duplicates.Remove(report, logger.Default()); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if !report.Clean() {
		if err := report.Render(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if !report.Clean() {
		return errCheckFailed
	}
	return nil
}
