package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maastricht-university/labgrid/config"
	"github.com/maastricht-university/labgrid/logging"
	"github.com/maastricht-university/labgrid/orchestrator"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

// flag name -> config key, bound on whichever command is running.
var bindings = map[string]string{
	"log-level": config.KeyLogLevel,
	"report":    config.KeyReport,
	"in":        config.KeyInput,
	"out":       config.KeyOutput,
	"mora":      config.KeyByMora,
	"tier":      config.KeyTierName,
	"source":    config.KeySource,
	"keyword":   config.KeyKeywords,
}

type app struct {
	v *viper.Viper
}

func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "labgrid",
		Short:         "Convert forced-alignment labels to TextGrid files and edit their tiers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "config file (default config/$LABGRID_ENV/config.yaml or labgrid.yaml)")
	root.PersistentFlags().StringP("log-level", "L", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("report", "", "write a JSON run report to this path")

	root.AddCommand(a.convertCmd(), a.tierCmd(), versionCmd())
	return root
}

// setup loads the config file, applies flag and environment overrides and
// builds the logger for cmd.
func (a *app) setup(cmd *cobra.Command) (*config.Root, *logrus.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	for name, key := range bindings {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return nil, nil, err
			}
		}
	}
	a.v.SetEnvPrefix("LABGRID")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	c.Override(a.v)
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	return c, logging.New(c.Pipeline.LogLvl, cmd.ErrOrStderr()), nil
}

type job func(*orchestrator.Pipeline, context.Context) (*orchestrator.Report, error)

func (a *app) run(cmd *cobra.Command, j job) error {
	c, log, err := a.setup(cmd)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"pipeline": c.Pipeline.Name, "in": c.Paths.Input, "out": c.Paths.Output}).Debug("starting")

	rep, err := j(orchestrator.NewPipeline(c, log), cmd.Context())
	if rep != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "processed=%d skipped=%d\n", len(rep.Processed), len(rep.Skipped))
	}
	return err
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "labgrid:", err)
		stop()
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "labgrid", Version)
		},
	}
}
