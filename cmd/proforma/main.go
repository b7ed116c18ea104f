package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"

	"lease_proforma/pkg/api/calculation"
	"lease_proforma/pkg/core/codec"
	"lease_proforma/pkg/core/config"
	"lease_proforma/pkg/core/engine"
	"lease_proforma/pkg/core/store"
)

var (
	flagScenario string
	flagOutput   string
	flagSave     bool
	flagDefaults string
	flagPort     int
)

var rootCmd = &cobra.Command{
	Use:   "proforma",
	Short: "Lease proposal projection engine",
	Long:  "Project full financial statements for a school lease proposal: historical, transition and dynamic periods with a circular financing solver.",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one projection from a scenario file",
	RunE:  runScenario,
}

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Serve the calculation API over HTTP",
	RunE:  runWorker,
}

func init() {
	runCmd.Flags().StringVarP(&flagScenario, "scenario", "f", "", "Scenario YAML file")
	runCmd.MarkFlagRequired("scenario")
	runCmd.Flags().StringVarP(&flagOutput, "out", "o", "", "Write result JSON to a file instead of stdout")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Persist the run to the database")

	workerCmd.Flags().IntVar(&flagPort, "port", 8080, "Port to listen on")

	rootCmd.PersistentFlags().StringVar(&flagDefaults, "defaults", "engine.hjson", "Engine defaults file (HJSON)")
	rootCmd.AddCommand(runCmd, workerCmd)
}

func main() {
	godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenario(_ *cobra.Command, _ []string) error {
	input, err := config.LoadScenario(flagScenario)
	if err != nil {
		return err
	}

	out, err := engine.Run(*input)
	if err != nil {
		return err
	}

	data, err := codec.EncodeOutput(out)
	if err != nil {
		return err
	}

	if flagOutput != "" {
		if err := os.WriteFile(flagOutput, data, 0o644); err != nil {
			return fmt.Errorf("write result %s: %w", flagOutput, err)
		}
		log.Printf("[CLI] result written to %s", flagOutput)
	} else {
		fmt.Println(string(data))
	}

	if flagSave {
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		defer store.Close()

		runID := uuid.New()
		if err := store.NewRunRepo().Save(ctx, runID, input, out); err != nil {
			return err
		}
		log.Printf("[CLI] run saved as %s", runID)
	}

	if !out.Validation.AllBalanceSheetsBalanced || !out.Validation.AllCashFlowsReconciled {
		return fmt.Errorf("projection failed validation: worst balance gap %s, worst reconciliation gap %s",
			out.Validation.WorstBalanceGap, out.Validation.WorstReconciliationGap)
	}
	return nil
}

func runWorker(_ *cobra.Command, _ []string) error {
	defaults, err := config.LoadEngineDefaults(flagDefaults)
	if err != nil {
		return err
	}
	timeout := time.Duration(defaults.RunTimeoutSeconds) * time.Second

	var repo *store.RunRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		defer store.Close()
		repo = store.NewRunRepo()
		log.Printf("[WORKER] run persistence enabled")
	}

	h := calculation.NewHandler(timeout, repo)
	addr := fmt.Sprintf(":%d", flagPort)
	log.Printf("[WORKER] listening on %s (run timeout %s)", addr, timeout)
	return fasthttp.ListenAndServe(addr, h.Handle)
}
