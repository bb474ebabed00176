/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/fulmenhq/iconeat/pkg/mapping"
	"github.com/fulmenhq/iconeat/pkg/safeio"
	"github.com/spf13/cobra"
)

func newMappingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Check the icon mapping file",
		Long: `The mapping file lists, for every source icon, the theme names it is
installed under. Keys and each key's names must be sorted and unique, and a
name may only be claimed by one icon.`,
	}
	cmd.AddCommand(newMappingValidateCommand())
	return cmd
}

func newMappingValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate (and optionally normalize) mapping.yaml",
		Long: `Validate reports duplicate or unsorted keys, duplicate or unsorted
values and values claimed by more than one key.

With --fix, values are deduplicated, keys and values are sorted and the file
is rewritten. Duplicate keys and values claimed by several keys still need a
manual edit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMappingValidate,
	}
	cmd.Flags().Bool("fix", false, "Sort and deduplicate the file in place")
	cmd.Flags().String("file", "mapping.yaml", "Mapping file to check")
	return cmd
}

func runMappingValidate(cmd *cobra.Command, args []string) error {
	fix, _ := cmd.Flags().GetBool("fix")
	cfg, err := loadConfig(cmd, map[string]string{"mapping.file": "file"})
	if err != nil {
		return err
	}

	path := cfg.Mapping.File
	if len(args) == 1 {
		path = args[0]
	}
	path, err = safeio.CleanUserPath(path)
	if err != nil {
		return err
	}

	res, err := mapping.NewValidator(logger.Default()).ValidateFile(path, fix)
	if err != nil {
		return err
	}
	if !res.Valid {
		return errCheckFailed
	}
	logger.Debug("Mapping is valid", logger.String("file", path), logger.Bool("fix", fix))
	return nil
}
