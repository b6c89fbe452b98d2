package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iop0175/Roadmaker/internal/server"
	"github.com/iop0175/Roadmaker/pkg/config"
	"github.com/iop0175/Roadmaker/pkg/sim"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roadmaker",
		Short: "Road-drawing traffic simulation engine",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var seconds int

	cmd := &cobra.Command{
		Use:   "run [project-path]",
		Short: "Run a headless simulation and print the outcome",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runHeadless(projectDir(args), seconds)
		},
	}

	cmd.Flags().IntVarP(&seconds, "seconds", "s", 60, "simulated duration in seconds")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server with the live state feed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.LoadProject(projectDir(args))
			if err != nil {
				return err
			}
			log := logrus.New()
			runner := sim.NewRunner(sim.NewState(cfg), cfg, log)
			return server.New(runner, cfg, port, log).Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a project config without running the simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadProject(projectDir(args))
			if err != nil {
				return err
			}
			cmd.Printf("config OK: tick_rate=%.0f vehicle_speed=%.2f max_vehicles=%d\n",
				cfg.TickRate, cfg.VehicleSpeed, cfg.MaxVehicles)
			return nil
		},
	}
}

func projectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
