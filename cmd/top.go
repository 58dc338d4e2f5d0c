package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ftahirops/macsense/engine"
	"github.com/ftahirops/macsense/ui"
)

func newTopCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Open the live view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTop(cmd, o)
		},
	}
}

func runTop(cmd *cobra.Command, o *globalOptions) error {
	eng, err := o.newEngine(o.cfg.Sections)
	if err != nil {
		return err
	}
	defer eng.Close()
	return ui.Run(eng, o.interval, o.cfg.Sections, o.uiOptions())
}

func newRecordCmd(o *globalOptions) *cobra.Command {
	var (
		count int
		live  bool
	)
	cmd := &cobra.Command{
		Use:   "record FILE",
		Short: "Record snapshots to a file for later replay",
		Long: `record collects every interval and appends each snapshot and its rates
to FILE as a zstd-compressed CBOR stream. With --live the live view runs
while recording.`,
		Example: `  macsense record -i 2s --count 300 /tmp/session.msr
  macsense record --live /tmp/session.msr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("cannot create record file: %w", err)
			}
			defer f.Close()

			eng, err := o.newEngine(o.cfg.Sections)
			if err != nil {
				return err
			}
			defer eng.Close()

			rec, err := engine.NewRecorder(eng, f)
			if err != nil {
				return err
			}
			if live {
				err = ui.Run(rec, o.interval, o.cfg.Sections, o.uiOptions())
			} else {
				err = recordHeadless(cmd, o, rec, count)
			}
			if cerr := rec.Close(); err == nil {
				err = cerr
			}
			o.logger.Info("recording finished", "file", args[0], "frames", rec.Frames())
			if err != nil {
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after N frames (0 = until interrupted)")
	cmd.Flags().BoolVar(&live, "live", false, "show the live view while recording")
	return cmd
}

func recordHeadless(cmd *cobra.Command, o *globalOptions, rec *engine.Recorder, count int) error {
	out := cmd.ErrOrStderr()
	defer fmt.Fprintln(out)
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		rec.Tick()
		if err := rec.Err(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\rrecorded %d frames", rec.Frames())
		if count > 0 && rec.Frames() >= count {
			return nil
		}
		select {
		case <-cmd.Context().Done():
			return nil
		case <-ticker.C:
		}
	}
}

func newReplayCmd(o *globalOptions) *cobra.Command {
	var printAll bool
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay a recording",
		Long: `replay plays a file written by record through the live view. With
--print every frame is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("cannot open replay file: %w", err)
			}
			defer f.Close()

			player, err := engine.NewPlayer(f, o.cfg.HistorySize)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			o.logger.Info("replaying", "file", args[0], "frames", player.Len(), "started", player.Started)
			if !printAll {
				return ui.Run(player, o.interval, o.cfg.Sections, o.uiOptions())
			}
			out := cmd.OutOrStdout()
			for i := 1; i <= player.Len(); i++ {
				snap, rates := player.Tick()
				if err := printSnapshot(out, o, o.cfg.Sections, snap, rates, i, player.Len(), false); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&printAll, "print", false, "print every frame instead of opening the live view")
	return cmd
}
