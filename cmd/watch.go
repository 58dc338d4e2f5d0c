package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ftahirops/macsense/engine"
	"github.com/ftahirops/macsense/model"
	"github.com/ftahirops/macsense/ui"
)

const clearScreen = "\033[2J\033[H"

func newWatchCmd(o *globalOptions) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "watch [section...]",
		Short: "Print sections every interval",
		Long: `watch collects every interval and reprints the selected sections.
Sections given as arguments override --sections. The screen is cleared
between frames when stdout is a terminal.`,
		Example: `  macsense watch cpu memory
  macsense watch -i 5s --count 10 network`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sections := o.cfg.Sections
			if len(args) > 0 {
				sections = args
			}
			eng, err := o.newEngine(sections)
			if err != nil {
				return err
			}
			defer eng.Close()
			redraw := !o.jsonOut && term.IsTerminal(int(os.Stdout.Fd()))
			return runWatch(cmd, o, eng, sections, count, redraw)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after N frames (0 = until interrupted)")
	return cmd
}

func runWatch(cmd *cobra.Command, o *globalOptions, eng engine.Ticker, sections []string, count int, redraw bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for iteration := 1; ; iteration++ {
		snap, rates := eng.Tick()
		if snap != nil {
			if err := printSnapshot(out, o, sections, snap, rates, iteration, count, redraw); err != nil {
				return err
			}
		}
		if count > 0 && iteration >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// printSnapshot writes one frame: a JSON document with --json, otherwise
// a title line followed by the rendered sections.
func printSnapshot(w io.Writer, o *globalOptions, sections []string, snap *model.Snapshot, rates *model.RateSnapshot,
	iteration, count int, redraw bool) error {
	if o.jsonOut {
		return writeJSON(w, snap, rates)
	}
	if redraw {
		fmt.Fprint(w, clearScreen)
	}
	iter := fmt.Sprintf("#%d", iteration)
	if count > 0 {
		iter = fmt.Sprintf("#%d/%d", iteration, count)
	}
	fmt.Fprintf(w, " macsense v%s  %s  every %s  %s\n", Version, snap.Timestamp.Format("15:04:05"), o.interval, iter)
	fmt.Fprintln(w, strings.Repeat("─", 40))
	_, err := fmt.Fprint(w, ui.Render(sections, snap, rates, o.uiOptions()))
	return err
}
