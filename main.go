// Command wavecheck validates a Lysmer absorbing boundary at the base of a
// one-dimensional column wave model: it runs the column, locates the P-wave
// arrival at each probe node, and compares post-arrival particle velocities
// (or, in reflection mode, the rigid-base velocity pattern) against elastic
// wave theory.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MZecchetto/wavecheck/column"
	"github.com/MZecchetto/wavecheck/sim"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wavecheck",
		Short:         "Validate absorbing boundaries on 1D column wave models",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("scenario", "s", "scenario.yaml", "scenario file")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.AddCommand(newRunCmd(), newReflectCmd())
	return root
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Check P-wave arrival and post-arrival velocity at the probe nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("scenario")
			sc, err := loadScenario(path)
			if err != nil {
				return err
			}
			col, err := sc.column()
			if err != nil {
				return err
			}
			log := newLogger(cmd)

			v := &column.Validator{Column: col, Places: sc.Places, Log: log}
			eng := sc.engine(col, sim.Absorbing)
			verdicts, err := v.Validate(cmd.Context(), eng, sc.Model, sc.Probes, sc.Direction)
			if err != nil {
				return err
			}
			return report(cmd, verdicts, "probe nodes")
		},
	}
}

func newReflectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reflect",
		Short: "Check total reflection of the wave against a rigid base",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("scenario")
			sc, err := loadScenario(path)
			if err != nil {
				return err
			}
			col, err := sc.column()
			if err != nil {
				return err
			}
			log := newLogger(cmd)

			eng := sc.engine(col, sim.Rigid)
			rc := &column.ReflectionCheck{
				Column:   col,
				Places:   sc.Places,
				Node:     sc.reflectionNode(),
				Variable: sc.reflectionVariable(),
				Indices:  sc.Reflection.Indices,
				Log:      log,
			}
			verdicts, err := rc.Validate(cmd.Context(), eng, sc.Model)
			if err != nil {
				return err
			}
			return report(cmd, verdicts, "samples")
		},
	}
}

func report(cmd *cobra.Command, verdicts []column.Verdict, what string) error {
	for _, v := range verdicts {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	if failed := column.Failed(verdicts); len(failed) > 0 {
		return fmt.Errorf("%d of %d %s outside tolerance", len(failed), len(verdicts), what)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "all %d %s within tolerance\n", len(verdicts), what)
	return nil
}
