// Package cmd implements the worldclockset command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worldclockset/config"
	"worldclockset/errlog"
	"worldclockset/timeutils"
)

const version = "0.1.0"

var checkDrift = timeutils.CheckDrift

type options struct {
	configPath string
	cfg        config.Config
}

// NewRootCmd returns the worldclockset command.
func NewRootCmd() *cobra.Command {
	opts := &options{cfg: config.Default()}

	cmd := &cobra.Command{
		Use:   "worldclockset",
		Short: "Set the local clock from a world time service",
		Long: `worldclockset fetches the current date and time from the configured
world time HTTP service (America/Sao_Paulo by default) and applies it as the
system's local time.
Failures are appended to a local error log.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	flags.StringVarP(&opts.cfg.URL, "url", "u", opts.cfg.URL, "time service URL")
	flags.StringVarP(&opts.cfg.LogFile, "log-file", "l", opts.cfg.LogFile, "file receiving failure lines")
	flags.DurationVarP(&opts.cfg.Timeout, "timeout", "t", 0, "HTTP timeout, 0 keeps the client default")
	flags.BoolVarP(&opts.cfg.DryRun, "dry-run", "d", false, "fetch and parse without setting the clock")
	flags.BoolVarP(&opts.cfg.UseSystemTools, "use-system-tools", "s", false, "set the clock with the date/time commands")
	flags.BoolVar(&opts.cfg.Sudo, "sudo", false, "run the date command through sudo (with --use-system-tools)")
	flags.StringVarP(&opts.cfg.NTPServer, "verify", "n", "", "NTP server used to report drift after setting")
	flags.StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel, "diagnostic log level")

	return cmd
}

// resolveConfig loads the config file and lets explicitly set flags win.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	if opts.configPath == "" {
		return opts.cfg, opts.cfg.Validate()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	overrides := map[string]func(){
		"url":              func() { cfg.URL = opts.cfg.URL },
		"log-file":         func() { cfg.LogFile = opts.cfg.LogFile },
		"timeout":          func() { cfg.Timeout = opts.cfg.Timeout },
		"dry-run":          func() { cfg.DryRun = opts.cfg.DryRun },
		"use-system-tools": func() { cfg.UseSystemTools = opts.cfg.UseSystemTools },
		"sudo":             func() { cfg.Sudo = opts.cfg.Sudo },
		"verify":           func() { cfg.NTPServer = opts.cfg.NTPServer },
		"log-level":        func() { cfg.LogLevel = opts.cfg.LogLevel },
	}
	for name, apply := range overrides {
		if flags.Changed(name) {
			apply()
		}
	}
	return cfg, cfg.Validate()
}

func newSetter(cfg config.Config) timeutils.ClockSetter {
	if cfg.UseSystemTools {
		return timeutils.NewCommandSetter(cfg.Sudo)
	}
	return timeutils.SystemSetter{}
}

func run(ctx context.Context, out io.Writer, cfg config.Config) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger, err := newLogger(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	setter := newSetter(cfg)
	syncer := &timeutils.Syncer{
		Fetcher: timeutils.NewFetcher(cfg.URL, cfg.Timeout),
		Setter:  setter,
		Logger:  logger,
		DryRun:  cfg.DryRun,
	}
	return execute(ctx, out, cfg, syncer, errlog.New(cfg.LogFile), logger, fmt.Sprint(setter))
}

// execute runs one sync and reports it. A pipeline failure is written to the
// error log and printed, and does not fail the command.
func execute(ctx context.Context, out io.Writer, cfg config.Config, syncer *timeutils.Syncer,
	errLog *errlog.Logger, logger *zap.Logger, setterName string) error {
	res, err := syncer.Run(ctx)
	if err != nil {
		stage, _ := timeutils.FailedStage(err)
		logger.Error("sync failed", zap.String("stage", string(stage)), zap.Error(err))
		if logErr := errLog.Log(err.Error()); logErr != nil {
			logger.Warn("could not write error log", zap.String("path", errLog.Path), zap.Error(logErr))
		}
		fmt.Fprintln(out, color.RedString("Failed to set local time: %v", err))
		return nil
	}

	report := timeutils.NewReport(cfg.URL, setterName, res)
	if cfg.NTPServer != "" && res.Applied {
		report.NTPServer = cfg.NTPServer
		if ip, err := timeutils.ServerIP(cfg.NTPServer); err == nil {
			report.NTPServer = fmt.Sprintf("%s (%s)", cfg.NTPServer, ip)
		}
		resp, err := checkDrift(cfg.NTPServer, cfg.Timeout)
		if err != nil {
			logger.Warn("drift check failed", zap.String("server", cfg.NTPServer), zap.Error(err))
		} else {
			report.NTP = resp
		}
	}

	table, err := timeutils.FormattedOutput(report)
	if err != nil {
		return err
	}
	fmt.Fprint(out, table)

	if res.Applied {
		fmt.Fprintln(out, color.GreenString("Local time updated successfully"))
	} else {
		fmt.Fprintln(out, color.YellowString("Dry run: local time not changed"))
	}
	return nil
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
