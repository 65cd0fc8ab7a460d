package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"hostile-sim/internal/admin"
	"hostile-sim/internal/config"
	"hostile-sim/internal/logging"
	"hostile-sim/internal/scenario"
	"hostile-sim/internal/sim"
)

var (
	simOutput     string
	simPrintOnly  bool
	simConfigPath string
	simSchemaPath string
	simScenario   string
	simTick       time.Duration
	simTicks      int
	simLogFile    string
	simAdminAddr  string
	simLogLevel   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the hostile drone simulator",
	Long:  "simulate runs a scenario against the hostile drone AI, emitting drone state, combat events and session state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		if simScenario != "" {
			cfg.Scenario = simScenario
		}
		sc, err := scenario.Resolve(cfg.Scenario)
		if err != nil {
			return err
		}

		isTTY := term.IsTerminal(int(os.Stdout.Fd()))
		mode := resolveMode(simOutput, simPrintOnly, os.Getenv("GREPTIMEDB_ENDPOINT") != "", isTTY && simTicks == 0)

		level := simLogLevel
		if env := os.Getenv("LOG_LEVEL"); env != "" {
			level = env
		}
		var logOut io.Writer = os.Stderr
		if mode == modeTUI {
			logOut = io.Discard
		}
		logger := logging.NewWithWriter(logOut, level)

		out, err := newWriters(cfg, mode, simLogFile, logger)
		if err != nil {
			return err
		}
		defer out.cleanup()

		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		simulator, err := sim.NewSimulator(os.Getenv("SESSION_ID"), cfg, sc, out.telemetry, out.events, tickInterval, nil, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)

		if simTicks > 0 {
			simulator.Step(ctx, simTicks)
			st := simulator.Session()
			logger.Info("simulation finished", "session_id", st.SessionID, "sim_time_ms", st.SimTimeMs,
				"phase", st.Phase, "destroyed", st.Destroyed, "hull", st.Hull, "player_down", st.PlayerDown)
			return nil
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			simulator.Run(gctx)
			// Hull breach ends the run for everyone.
			cancel()
			return nil
		})
		if simAdminAddr != "" {
			srv := admin.NewServer(simulator, logger.With("component", "admin"))
			if out.tui != nil {
				out.tui.SetAdminStatus(true)
			}
			g.Go(func() error { return srv.Start(gctx, simAdminAddr) })
		}
		err = g.Wait()
		logger.Info("hostile simulation stopped", "session_id", simulator.SessionID())
		return err
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simOutput, "output", modeAuto, "Output: auto, json, color, tui or greptime")
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print to STDOUT instead of writing to DB")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/hostile.yaml", "Path to hostile AI configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/hostile.cue", "Path to CUE schema file")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "Built-in scenario name or path to a scenario YAML")
	simulateCmd.Flags().DurationVar(&simTick, "tick", 0, "Tick interval (e.g. 50ms); defaults to tick_ms from the config")
	simulateCmd.Flags().IntVar(&simTicks, "ticks", 0, "Run this many ticks as fast as possible and exit")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export drone state JSONL; events and session state go next to it")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin-addr", ":8080", "Admin UI listen address; empty disables it")
	simulateCmd.Flags().StringVar(&simLogLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
}
