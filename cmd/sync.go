/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"

	"github.com/fulmenhq/iconeat/internal/colorsync"
	"github.com/fulmenhq/iconeat/pkg/logger"
	"github.com/spf13/cobra"
)

func newSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [folder]",
		Short: "Check that black and white icon sets match",
		Long: `Sync compares <folder>/black and <folder>/white and reports icons that
exist in only one of them. With --fix, each missing icon is copied from the
other set with black and white swapped. The exit status reflects the state
before fixing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSync,
	}
	cmd.Flags().Bool("fix", false, "Copy missing icons with inverted colours")
	cmd.Flags().String("folder", "icons", "Folder holding the black/ and white/ sets")
	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	fix, _ := cmd.Flags().GetBool("fix")
	cfg, err := loadConfig(cmd, map[string]string{"sync.folder": "folder"})
	if err != nil {
		return err
	}

	folder := cfg.Sync.Folder
	if len(args) == 1 {
		folder = args[0]
	}

	report, err := colorsync.Check(folder, fix, logger.Default())
	if err != nil {
		return err
	}
	for _, p := range report.Copied {
		fmt.Fprintf(cmd.OutOrStdout(), "copied %s\n", p)
	}
	if !report.Valid() {
		return errCheckFailed
	}
	return nil
}
