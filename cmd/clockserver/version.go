package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcrobe/nojs-clock/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Info()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "clockserver %s (commit %s, built %s, %s)\n",
				info["version"], info["git_commit"], info["build_date"], info["go_version"])
			return err
		},
	}
}
