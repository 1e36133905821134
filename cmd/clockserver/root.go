package main

import (
	"github.com/spf13/cobra"

	"github.com/vcrobe/nojs-clock/internal/config"
	"github.com/vcrobe/nojs-clock/internal/logging"
)

// options shared by every subcommand
type rootOptions struct {
	configFile string
	logPreset  string
}

// NewRootCmd builds the clockserver command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "clockserver",
		Short:         "clockserver serves a single page with a live clock",
		Long:          `Use clockserver to serve the clock page, or to print one server-side render of it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(
		&opts.configFile, "config", "c", "",
		"config file (defaults and NOJSCLOCK_* environment variables when empty)",
	)
	cmd.PersistentFlags().StringVar(
		&opts.logPreset, "log-preset", "",
		"preset of configurations used by the logs, \"development\" or \"production\"; overrides log.preset",
	)

	cmd.AddCommand(newServeCmd(opts), newRenderCmd(opts), newVersionCmd())
	return cmd
}

// load reads the configuration and installs the global logger.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.logPreset != "" {
		cfg.Log.Preset = o.logPreset
	}
	if err := logging.Configure(cfg.Log.Preset); err != nil {
		return nil, err
	}
	return cfg, nil
}
