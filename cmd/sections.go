package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/ui"
)

// sectionCmd describes a one-shot per-domain command.
type sectionCmd struct {
	name  string
	short string
	flags func(cmd *cobra.Command, o *globalOptions)
}

var sectionCmds = []sectionCmd{
	{name: "host", short: "Show OS version, model and uptime"},
	{name: "cpu", short: "Show CPU topology, load and usage"},
	{name: "memory", short: "Show virtual memory and swap"},
	{name: "volumes", short: "Show mounted volumes and free space"},
	{name: "disks", short: "Show physical disks and I/O rates"},
	{name: "network", short: "Show interfaces and traffic"},
	{name: "gpu", short: "Show GPUs and utilization"},
	{name: "battery", short: "Show battery charge and health"},
	{name: "smc", short: "Show SMC temperatures, fans and power sensors", flags: smcFlags},
	{name: "wifi", short: "Show the Wi-Fi link and nearby networks", flags: wifiFlags},
	{name: "smart", short: "Show SMART health of internal disks"},
}

func smcFlags(cmd *cobra.Command, o *globalOptions) {
	cmd.Flags().StringSlice("prefix", nil, "only keys starting with these prefixes (T for temperatures)")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("prefix") {
			p, err := cmd.Flags().GetStringSlice("prefix")
			if err != nil {
				return err
			}
			o.cfg.SMC.KeyPrefixes = p
		}
		return nil
	}
}

func wifiFlags(cmd *cobra.Command, o *globalOptions) {
	cmd.Flags().Bool("scan", false, "scan for nearby networks")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("scan") {
			scan, err := cmd.Flags().GetBool("scan")
			if err != nil {
				return err
			}
			o.cfg.WiFi.Scan = scan
		}
		return nil
	}
}

func newSectionCmd(o *globalOptions, s sectionCmd) *cobra.Command {
	cmd := &cobra.Command{
		Use:   s.name,
		Short: s.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(cmd, o, []string{s.name})
		},
	}
	if s.flags != nil {
		s.flags(cmd, o)
	}
	return cmd
}

func newAllCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Show every enabled section once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSections(cmd, o, o.cfg.Sections)
		},
	}
}

// jsonReport is the --json output.
type jsonReport struct {
	Snapshot *model.Snapshot     `json:"snapshot"`
	Rates    *model.RateSnapshot `json:"rates,omitempty"`
}

func writeJSON(w io.Writer, snap *model.Snapshot, rates *model.RateSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Snapshot: snap, Rates: rates})
}

// runSections collects the sections once and prints them.
func runSections(cmd *cobra.Command, o *globalOptions, sections []string) error {
	eng, err := o.newEngine(sections)
	if err != nil {
		return err
	}
	defer func() {
		if err := eng.Close(); err != nil {
			o.logger.Warn("release collectors", "err", err)
		}
	}()

	window := o.sample
	if !needsRates(sections) {
		window = 0
	}
	snap, rates := sampleOnce(cmd.Context(), eng, window)

	out := cmd.OutOrStdout()
	if o.jsonOut {
		return writeJSON(out, snap, rates)
	}
	_, err = fmt.Fprint(out, ui.Render(sections, snap, rates, o.uiOptions()))
	return err
}
