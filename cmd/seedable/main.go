// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genie-coder21/seedable/internal/buildinfo"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seedable",
		Short: "Cross-seed filtering Torznab proxy",
		Long:  "Seedable sits between Sonarr/Radarr and NZBHydra2 and returns only releases available on multiple trackers.",
	}

	rootCmd.AddCommand(RunServeCommand())
	rootCmd.AddCommand(RunVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func RunVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Print(buildinfo.String())
		},
	}
}
