package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ftahirops/macsense/collector"
	"github.com/ftahirops/macsense/config"
	"github.com/ftahirops/macsense/engine"
	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/ui"
)

// Version is set at build time via ldflags.
var Version = "0.1.0"

// globalOptions holds the persistent flags and the effective config
// derived from them.
type globalOptions struct {
	configPath string
	jsonOut    bool
	logLevel   string
	interval   time.Duration
	sample     time.Duration
	sections   []string
	tempUnit   string
	allIfaces  bool

	cfg    config.Config
	logger *slog.Logger
}

func addGlobalFlags(fs *pflag.FlagSet, o *globalOptions) {
	fs.StringVar(&o.configPath, "config", "", "config file (default "+config.Path()+")")
	fs.BoolVar(&o.jsonOut, "json", false, "print the snapshot as JSON")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.DurationVarP(&o.interval, "interval", "i", 0, "refresh interval for watch, top and record")
	fs.DurationVar(&o.sample, "sample", time.Second, "sampling window for rates in one-shot commands (0 disables rates)")
	fs.StringSliceVarP(&o.sections, "sections", "s", nil, "sections to collect (default all)")
	fs.StringVar(&o.tempUnit, "temp-unit", "", "temperature unit: C or F")
	fs.BoolVarP(&o.allIfaces, "all-interfaces", "a", false, "include down interfaces without traffic")
}

// resolve loads the config file and lets explicitly set flags override it.
func (o *globalOptions) resolve(fs *pflag.FlagSet, stderr io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if o.logLevel == "" {
		o.logLevel = cfg.LogLevel
	}
	o.logger = newLogger(stderr, o.logLevel)
	if err != nil {
		o.logger.Warn("config ignored", "err", err)
		cfg = config.Default()
	}

	if fs.Changed("interval") {
		if o.interval < time.Second {
			return fmt.Errorf("--interval must be at least 1s, got %v", o.interval)
		}
		cfg.IntervalSec = int(o.interval / time.Second)
	}
	o.interval = cfg.Interval()
	if fs.Changed("sections") {
		cfg.Sections = o.sections
	}
	if len(cfg.Sections) == 0 {
		cfg.Sections = collector.Sections
	}
	if fs.Changed("temp-unit") {
		cfg.TempUnit = o.tempUnit
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// newLogger writes text logs to a terminal and JSON logs otherwise.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	options := &slog.HandlerOptions{Level: lvl}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

// newEngine builds a registry for sections and an engine around it.
func (o *globalOptions) newEngine(sections []string) (*engine.Engine, error) {
	reg, err := collector.NewRegistry(collector.Options{
		Sections:      sections,
		SMARTInterval: o.cfg.SMARTInterval(),
		WiFiInterval:  o.cfg.WiFiInterval(),
		WiFiScan:      o.cfg.WiFi.Scan,
		SMCPrefixes:   o.cfg.SMC.KeyPrefixes,
		Logger:        o.logger,
	})
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(reg, o.cfg.HistorySize, o.logger), nil
}

func (o *globalOptions) uiOptions() ui.Options {
	return ui.Options{
		Width:    terminalWidth(),
		TempUnit: o.cfg.TempUnit,
		All:      o.allIfaces,
	}
}

// terminalWidth returns the stdout width, or 0 when stdout is not a
// terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

// rateSections are the sections whose output improves with a second sample.
var rateSections = map[string]bool{"cpu": true, "memory": true, "disks": true, "network": true}

func needsRates(sections []string) bool {
	for _, s := range sections {
		if rateSections[s] {
			return true
		}
	}
	return false
}

// sampleOnce collects one snapshot, and with a positive window a second
// one so rates are available.
func sampleOnce(ctx context.Context, eng *engine.Engine, window time.Duration) (*model.Snapshot, *model.RateSnapshot) {
	snap, rates := eng.Tick()
	if window <= 0 {
		return snap, rates
	}
	select {
	case <-ctx.Done():
		return snap, rates
	case <-time.After(window):
	}
	return eng.Tick()
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	o := &globalOptions{}
	root := &cobra.Command{
		Use:   "macsense",
		Short: "macOS hardware and system telemetry",
		Long: `macsense reads CPU, memory, disk, network, GPU, battery, SMC sensor,
Wi-Fi and SMART data straight from the kernel and IOKit.

Without a subcommand it opens the live view on a terminal and prints every
section once otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.resolve(cmd.Flags(), cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !o.jsonOut && term.IsTerminal(int(os.Stdout.Fd())) {
				return runTop(cmd, o)
			}
			return runSections(cmd, o, o.cfg.Sections)
		},
	}
	addGlobalFlags(root.PersistentFlags(), o)

	root.AddCommand(newAllCmd(o))
	for _, s := range sectionCmds {
		root.AddCommand(newSectionCmd(o, s))
	}
	root.AddCommand(
		newWatchCmd(o),
		newTopCmd(o),
		newRecordCmd(o),
		newReplayCmd(o),
		newConfigCmd(o),
		newVersionCmd(),
	)
	return root
}

// Run executes the command line and returns the first error.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
