/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/fulmenhq/iconeat/internal/search"
	"github.com/fulmenhq/iconeat/pkg/config"
	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <appname>",
		Short: "List installed icon names for an app",
		Long: `Search looks through installed icon themes and desktop files for icons
belonging to an app and prints them as mapping values (folder/name), ready to
be added to mapping.yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}
	cmd.Flags().BoolP("verbose", "v", false, "Show the files each name was found in")
	cmd.Flags().Bool("no-icons", false, "Don't search icon themes")
	cmd.Flags().Bool("no-desktop", false, "Don't search desktop files")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	noIcons, _ := cmd.Flags().GetBool("no-icons")
	noDesktop, _ := cmd.Flags().GetBool("no-desktop")
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	appname := args[0]
	results := search.Results{}
	if !noIcons {
		icons, err := search.Icons(appname, search.Options{
			IconRoots:   config.ExpandHomeAll(cfg.Search.IconRoots),
			HicolorRoot: config.ExpandHome(cfg.Search.HicolorRoot),
		})
		if err != nil {
			return err
		}
		results = search.Merge(results, icons)
	}
	if !noDesktop {
		desktop, err := search.DesktopFiles(appname, config.ExpandHomeAll(cfg.Search.DesktopRoots))
		if err != nil {
			return err
		}
		results = search.Merge(results, desktop)
	}
	return results.Render(cmd.OutOrStdout(), verbose)
}
