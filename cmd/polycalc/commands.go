package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gopoly"
	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/logging"
	"github.com/njchilds90/gopoly/internal/repl"
)

type app struct {
	configPath string
	file       string
	color      string
	logLevel   string
	force      bool

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "polycalc",
		Short: "Interactive calculator for single-variable integer polynomials",
		Long: `polycalc stores two polynomials, Exp1 and Exp2, and adds, subtracts,
multiplies, evaluates and compares them. Expressions are written as
terms like "4x^3 +2x^2 -6x^1 +8x^0".`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runREPL,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.polycalc/config.yaml)")
	root.PersistentFlags().StringVar(&a.color, "color", "", "colour output: auto, always or never")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.Flags().StringVarP(&a.file, "file", "f", "", "load Exp1 and Exp2 from the first two lines of a file")

	calcCmd := &cobra.Command{
		Use:   "calc <add|sub|mul|equal> <exp1> <exp2>",
		Short: "Run a single operation on two expressions",
		Args:  cobra.ExactArgs(3),
		RunE:  a.runCalc,
	}

	evalCmd := &cobra.Command{
		Use:   "eval <expr> <x>",
		Short: "Evaluate an expression at an integer x",
		Args:  cobra.ExactArgs(2),
		RunE:  a.runEval,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the polycalc config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runConfigInit,
	}
	configInitCmd.Flags().BoolVar(&a.force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "polycalc", version)
		},
	}

	root.AddCommand(calcCmd, evalCmd, configCmd, versionCmd)
	return root
}

// setup loads the config, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = a.color
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.cfg = cfg
	a.log = logger
	return nil
}

func (a *app) runREPL(cmd *cobra.Command, args []string) error {
	calc := gopoly.NewCalculator(gopoly.WithLogger(a.log))
	d := repl.New(calc, cmd.InOrStdin(), cmd.OutOrStdout(), repl.Options{
		Prompt: a.cfg.Prompt,
		Color:  a.cfg.Color,
		Logger: a.log,
	})
	if d.Interactive() {
		repl.ListCommands(cmd.OutOrStdout())
	}
	if a.file != "" {
		if _, err := d.Exec("read " + a.file); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	a.log.Debug("repl started", "interactive", d.Interactive())
	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *app) runCalc(cmd *cobra.Command, args []string) error {
	calc := gopoly.NewCalculator(gopoly.WithLogger(a.log))
	if err := calc.Input(args[1], args[2]); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch args[0] {
	case "add":
		fmt.Fprintln(out, calc.Add())
	case "sub":
		fmt.Fprintln(out, calc.Sub())
	case "mul":
		fmt.Fprintln(out, calc.Mul())
	case "equal":
		if calc.Equal() {
			fmt.Fprintln(out, "Equal")
		} else {
			fmt.Fprintln(out, "Not equal")
		}
	default:
		return fmt.Errorf("unknown operation %q: want add, sub, mul or equal", args[0])
	}
	return nil
}

func (a *app) runEval(cmd *cobra.Command, args []string) error {
	p, err := gopoly.Parse(args[0])
	if err != nil {
		return err
	}
	x, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("x must be an integer: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), p.Eval(x))
	return nil
}

func (a *app) runConfigInit(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil && !a.force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
	return nil
}
