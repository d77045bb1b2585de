package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"imgtransform/internal/app"
	"imgtransform/internal/config"
	"imgtransform/internal/logger"
	"imgtransform/internal/pipeline"

	_ "imgtransform/internal/pipeline/native"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

// cli carries the resolved configuration from the persistent pre-run to the
// subcommands.
type cli struct {
	cfg    config.Config
	logger logger.Logger

	engine    string
	logLevel  string
	logFormat string
	dir       string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "imgtransform",
		Short:         "Browse a directory of images and apply stock filters",
		Long:          "Without a subcommand the window opens. Every transformed image is written to the Modified directory next to its source.",
		Version:       app.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runGUI(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.engine, "engine", "", "imaging engine (native or opencv)")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error or disabled")
	flags.StringVar(&c.logFormat, "log-format", "", "log format: console or json")
	root.Flags().StringVar(&c.dir, "dir", "", "directory to open at start")

	root.AddCommand(
		newFiltersCmd(),
		newListCmd(),
		newApplyCmd(c),
	)
	return root
}

// resolve layers flags over the environment over the defaults.
func (c *cli) resolve(cmd *cobra.Command) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("engine") {
		cfg.Engine = c.engine
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = c.logFormat
	}
	if flags.Lookup("dir") != nil && flags.Changed("dir") {
		cfg.StartDir = c.dir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = log
	return nil
}

func (c *cli) engineFor() (pipeline.Engine, error) {
	return pipeline.New(c.cfg.Engine, c.logger)
}

func (c *cli) runGUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	application, err := app.NewApplication(fyneapp.NewWithID(app.AppID), c.cfg, c.logger)
	if err != nil {
		c.logger.Error("Main", err, nil)
		return err
	}
	return application.Run(ctx)
}

// signalContext is used by the headless commands; the window installs its
// own handling through the shutdown manager.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
