package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcrobe/nojs-clock/internal/server"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print one server-side render of the page as HTML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			out, err := server.NewServer(cfg).Render()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}
