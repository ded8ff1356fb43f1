package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/hookcalc/pkg/hookcalc"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/config"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/plugins"
	"github.com/randalmurphal/hookcalc/pkg/hookcalc/tape"
)

var errDemoConfig = errors.New("demo always uses the built-in plugins; --config is not supported")

// cliConfig holds the persistent flags.
type cliConfig struct {
	ConfigPath string
	LogLevel   string
}

func newRootCmd() *cobra.Command {
	cfg := &cliConfig{LogLevel: "info"}

	root := &cobra.Command{
		Use:           "hookcalc",
		Short:         "Calculator extended by plugins through event hooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.ConfigPath, "config", "", "Calculator config file (.yaml, .json, .toml) for eval; defaults to the demo plugins")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the classic demo: plus 10, minus 5, plus 2000, squared, multiply 2",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.ConfigPath != "" {
				return errDemoConfig
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			ops := []op{
				{kind: opPlus, arg: 10},
				{kind: opMinus, arg: 5},
				{kind: opPlus, arg: 2000},
				{kind: opPress, button: plugins.ButtonSquared},
				{kind: opPress, button: plugins.ButtonMultiply, arg: 2, hasArg: true},
			}
			return run(cmd.Context(), cmd.OutOrStdout(), logger, config.Default(), ops)
		},
	}

	evalCmd := &cobra.Command{
		Use:     "eval OP...",
		Short:   "Apply operations in order and print the final value",
		Example: "  hookcalc eval plus:10 minus:5 press:squared\n  hookcalc eval set:9 press:divide:3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			ops, err := parseOps(args)
			if err != nil {
				return err
			}
			file, err := loadConfig(cfg.ConfigPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), logger, file, ops)
		},
	}

	var tapePath string
	var tapeReset bool
	tapeCmd := &cobra.Command{
		Use:   "tape",
		Short: "List the entries of a SQLite tape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printTape(cmd.Context(), cmd.OutOrStdout(), tapePath, tapeReset)
		},
	}
	tapeCmd.Flags().StringVar(&tapePath, "path", "", "Path to the tape database")
	tapeCmd.Flags().BoolVar(&tapeReset, "reset", false, "Clear the tape after listing it")
	_ = tapeCmd.MarkFlagRequired("path")

	root.AddCommand(demoCmd, evalCmd, tapeCmd)
	return root
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func loadConfig(path string) (config.File, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// run builds a calculator from file, applies ops and prints the final value.
func run(ctx context.Context, out io.Writer, logger *slog.Logger, file config.File, ops []op) (err error) {
	if err := file.Validate(); err != nil {
		return err
	}
	ps, err := plugins.NewCatalog(plugins.WithLogger(logger)).Build(file.Plugins)
	if err != nil {
		return err
	}

	calc := hookcalc.New(
		hookcalc.Config{InitialValue: file.InitialValue, Plugins: ps},
		hookcalc.WithLogger(logger),
	)
	defer func() {
		if cerr := calc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for _, o := range ops {
		if err := o.apply(ctx, calc); err != nil {
			return fmt.Errorf("%s: %w", o, err)
		}
	}
	_, err = fmt.Fprintf(out, "%g\n", calc.Value())
	return err
}

func printTape(ctx context.Context, out io.Writer, path string, reset bool) error {
	store, err := tape.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%d\t%s\t%v\t%g\n", e.Seq, e.Kind, e.Args, e.Value)
	}

	if reset {
		return store.Reset(ctx)
	}
	return nil
}
