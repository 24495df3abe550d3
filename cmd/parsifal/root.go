package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"parsifal/formval"
	"parsifal/internal/browser"
	"parsifal/internal/config"
)

// app carries state shared by subcommands for one invocation.
type app struct {
	configPath string
	profile    string
	probe      bool
	logLevel   string

	cfg     *config.Config
	logger  *log.Logger
	browser *browser.Browser
	flags   *formval.Flags
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "parsifal",
		Short:         "Resolve the effective values of HTML form controls",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "quirk profile file (yaml, json or toml)")
	pf.StringVar(&a.profile, "profile", "", "built-in profile: standards or legacy")
	pf.BoolVar(&a.probe, "probe", false, "probe capability flags in headless Chrome")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	pf.Duration("timeout", config.DefaultTimeout, "timeout for network and browser operations")

	root.AddCommand(newInspectCommand(a), newProbeCommand(a), newFlagsCommand(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{Path: a.configPath, Profile: a.profile})
	if err != nil {
		return a.fail(cmd, err)
	}
	if a.probe {
		cfg.Probe = true
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		if d, err := cmd.Flags().GetDuration("timeout"); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	a.cfg = cfg

	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix:          "parsifal",
		ReportTimestamp: true,
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return a.fail(cmd, fmt.Errorf("log level %q: %w", cfg.LogLevel, err))
	}
	a.logger.SetLevel(level)
	return nil
}

// fail logs err for the user and hands it back to cobra.
func (a *app) fail(cmd *cobra.Command, err error) error {
	logger := a.logger
	if logger == nil {
		logger = log.New(cmd.ErrOrStderr())
	}
	logger.Error(err)
	return err
}

func (a *app) chrome() *browser.Browser {
	if a.browser == nil {
		a.browser = browser.New(a.logger, a.cfg.Timeout)
	}
	return a.browser
}

func (a *app) close() {
	if a.browser != nil {
		a.browser.Close()
		a.browser = nil
	}
}

// capabilities returns the flags for this run. They are resolved on first
// use and reused for every document afterwards.
func (a *app) capabilities(ctx context.Context) formval.Flags {
	if a.flags != nil {
		return *a.flags
	}
	flags := a.cfg.Flags
	if a.cfg.Probe {
		probed, err := a.chrome().Probe(ctx)
		if err != nil {
			a.logger.Warn("probe failed, using profile", "profile", a.cfg.Profile, "err", err)
		} else {
			flags = probed
		}
	}
	a.flags = &flags
	return flags
}

func newFlagsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "flags",
		Short: "Print the effective capability flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), a.capabilities(cmd.Context()))
		},
	}
}

func newProbeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Probe capability flags in headless Chrome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := a.chrome().Probe(cmd.Context())
			if err != nil {
				return a.fail(cmd, err)
			}
			return writeJSON(cmd.OutOrStdout(), flags)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
