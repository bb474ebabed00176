/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fulmenhq/iconeat/pkg/buildinfo"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show iconeat version",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("extended", false, "Show build details")
	cmd.Flags().Bool("report-json", false, "Output version information in JSON format")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("report-json")
	out := cmd.OutOrStdout()
	info := buildinfo.Current()

	if jsonOutput {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	fmt.Fprintf(out, "iconeat %s\n", info.Version)
	if !extended {
		return nil
	}
	if info.Module != "" {
		fmt.Fprintf(out, "Module:     %s\n", info.Module)
	}
	if info.Commit != "" {
		fmt.Fprintf(out, "Commit:     %s\n", info.Commit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(out, "Built:      %s\n", info.BuildDate)
	}
	fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
	fmt.Fprintf(out, "Platform:   %s\n", info.Platform)
	return nil
}
