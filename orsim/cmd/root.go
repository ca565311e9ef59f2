// Package cmd provides the command-line interface for orsim.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/orsimlab/orsim/datarecording"
	"github.com/orsimlab/orsim/monitoring"
	"github.com/orsimlab/orsim/sim"
)

var (
	workloadFile string
	rooms        int
	roomsMax     int
	seed         uint64
	outputFile   string
	monitorOn    bool
	monitorPort  int
	openBrowser  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "orsim",
	Short: "Simulate patients flowing through a hospital's shared pool of " +
		"operating rooms.",
	Long: `orsim runs a minute-by-minute Monte Carlo simulation of patients ` +
		`queueing for a shared pool of operating rooms. It estimates ` +
		`waiting-time distributions and room utilization for a workload ` +
		`described in a yaml file, optionally sweeping over a range of room ` +
		`counts with one independent run per count.`,
	RunE: runSweep,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&workloadFile, "workload", "w",
		"workload.yaml", "path to the yaml workload file")
	rootCmd.Flags().IntVarP(&rooms, "rooms", "r", 0,
		"number of day operating rooms (overrides the workload file)")
	rootCmd.Flags().IntVar(&roomsMax, "rooms-max", 0,
		"sweep day room counts from --rooms up to this value")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0,
		"base random seed (overrides the workload file)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"database name for recorded results (default orsim_run_<id>)")
	rootCmd.Flags().BoolVar(&monitorOn, "monitor", false,
		"serve run progress and abort endpoints over HTTP")
	rootCmd.Flags().IntVar(&monitorPort, "monitor-port", 0,
		"port for the monitoring server")
	rootCmd.Flags().BoolVar(&openBrowser, "open", false,
		"open the monitor in a browser")
}

type runOutcome struct {
	rooms  int
	result *sim.Result
	err    error
}

func runSweep(cmd *cobra.Command, _ []string) error {
	// A .env file can carry site defaults; flags still win.
	_ = godotenv.Load()
	applyEnvOverrides()

	cfg, err := sim.LoadConfig(workloadFile)
	if err != nil {
		return err
	}

	if rooms > 0 {
		cfg.DayRooms = rooms
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	lo := cfg.DayRooms
	hi := lo
	if roomsMax > 0 {
		hi = roomsMax
	}
	if hi < lo {
		return fmt.Errorf("rooms-max %d is below the starting room count %d",
			hi, lo)
	}

	drivers := make([]*sim.Driver, 0, hi-lo+1)
	for roomCount := lo; roomCount <= hi; roomCount++ {
		runCfg := cfg
		runCfg.DayRooms = roomCount
		runCfg.Seed = cfg.Seed + uint64(roomCount-lo)

		driver, err := sim.NewDriver(runCfg)
		if err != nil {
			return fmt.Errorf("rooms=%d: %w", roomCount, err)
		}

		drivers = append(drivers, driver)
	}

	var monitor *monitoring.Monitor
	if monitorOn || monitorPort > 0 {
		monitor = monitoring.NewMonitor().WithPortNumber(monitorPort)
		if openBrowser {
			monitor.WithBrowser()
		}
		monitor.StartServer()
	}

	writer := datarecording.NewWriter(outputFile)

	// Runs are independent, so the sweep is parallel at whole-run
	// granularity. Each run owns its driver, seed, and abort context.
	outcomes := make([]runOutcome, len(drivers))
	var wg sync.WaitGroup

	for i, driver := range drivers {
		roomCount := lo + i
		name := "rooms-" + strconv.Itoa(roomCount)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if monitor != nil {
			monitor.RegisterRun(name, cancel)

			bar := monitor.CreateProgressBar(name, uint64(driver.TotalTicks()))
			driver.Progress = func(done, _ int) {
				bar.SetFinished(uint64(done))
			}
		}

		wg.Add(1)
		go func(i int, driver *sim.Driver) {
			defer wg.Done()

			result, err := driver.Run(ctx)
			outcomes[i] = runOutcome{rooms: roomCount, result: result, err: err}
		}(i, driver)
	}

	wg.Wait()

	for _, outcome := range outcomes {
		if outcome.err != nil {
			return fmt.Errorf("rooms=%d: simulation failed: %w",
				outcome.rooms, outcome.err)
		}

		writer.RecordOutcomes(outcome.rooms, outcome.result.Records)
		writer.RecordUtilization(outcome.rooms,
			outcome.result.UtilizationCounts,
			outcome.result.UtilizationFractions)

		printUtilization(outcome.rooms, outcome.result.UtilizationFractions)
	}

	writer.Flush()

	return nil
}

func applyEnvOverrides() {
	if outputFile == "" {
		outputFile = os.Getenv("ORSIM_OUTPUT")
	}

	if monitorPort == 0 {
		if port, err := strconv.Atoi(os.Getenv("ORSIM_MONITOR_PORT")); err == nil {
			monitorPort = port
		}
	}
}

// printUtilization writes the occupancy table of one run to stderr in the
// form "occupied/rooms fraction".
func printUtilization(rooms int, fractions []float64) {
	for occupancy, fraction := range fractions {
		fmt.Fprintf(os.Stderr, "%d/%d %g\n", occupancy, rooms, fraction)
	}
}
