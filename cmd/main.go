package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stackbit/sourcebit-sample-plugin/internal/clock"
	"github.com/stackbit/sourcebit-sample-plugin/internal/config"
	"github.com/stackbit/sourcebit-sample-plugin/internal/host"
	"github.com/stackbit/sourcebit-sample-plugin/internal/options"
	"github.com/stackbit/sourcebit-sample-plugin/internal/sample"
	"github.com/stackbit/sourcebit-sample-plugin/internal/setup"
	"github.com/stackbit/sourcebit-sample-plugin/internal/store"
)

const (
	defaultConfigPath = "sourcebit.sample.yaml"
	defaultStatePath  = ".sourcebit-sample-state.json"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sourcebit-sample",
		Short:        "Reference source plugin for the content-aggregation pipeline",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newSetupCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		watch      bool
		configPath string
		statePath  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Bootstrap the plugin and run the transform chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync()

			if err := godotenv.Load(); err != nil {
				logger.Warn("No .env file found, using environment variables")
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Only forward the watch flag when the operator actually set
			// it, so a config-file value is not shadowed by the flag
			// default.
			runtimeParams := map[string]any{}
			if cmd.Flags().Changed("watch") {
				runtimeParams["watch"] = watch
			}

			plugin := sample.New(clock.NewRealClock())
			resolved := options.Resolve(plugin.OptionSpecs(), options.Sources{
				RuntimeParameters: runtimeParams,
				ConfigFile:        cfg.Options,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			watching, _ := resolved["watch"].(bool)
			h := host.New(plugin, store.NewFileStore(statePath, logger), logger)
			return h.Run(ctx, resolved, watching)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false,
		"periodically update a random entry and re-run the transform")
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath,
		"path to the plugin config file")
	cmd.Flags().StringVar(&statePath, "state-file", defaultStatePath,
		"path to the persisted plugin state")
	return cmd
}

func newSetupCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactively collect the plugin's configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			plugin := sample.New(clock.NewRealClock())

			answers, err := plugin.Setup(setup.NewDriver())
			if err != nil {
				return err
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			for name, value := range options.Public(plugin.OptionSpecs(), plugin.OptionsFromSetup(answers)) {
				cfg.Options[name] = value
			}
			if err := config.Save(configPath, cfg); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath,
		"path to the plugin config file")
	return cmd
}
