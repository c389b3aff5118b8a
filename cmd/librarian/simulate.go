package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/simulation"
)

func newSimulateCmd(opts *rootOptions, out io.Writer) *cobra.Command {
	simConfig := simulation.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run random circulation scenarios with concurrent desk workers",
		Long: "Runs issue, return, hold and edit scenarios plus the queries with concurrent workers against the " +
			"configured journal, answering every question at random, and checks the circulation invariants afterward.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulation(cmd.Context(), *opts, simConfig, out)
		},
	}

	cmd.Flags().IntVarP(&simConfig.Workers, "workers", "w", simConfig.Workers, "concurrent desk workers")
	cmd.Flags().IntVarP(&simConfig.Operations, "operations", "n", simConfig.Operations, "scenarios to execute")
	cmd.Flags().IntVar(&simConfig.MinBooks, "books", simConfig.MinBooks, "minimum number of books")
	cmd.Flags().IntVar(&simConfig.MinBorrowers, "borrowers", simConfig.MinBorrowers, "minimum number of borrowers")
	cmd.Flags().IntVar(&simConfig.MinStaff, "staff", simConfig.MinStaff, "minimum number of staff members")
	cmd.Flags().Float64Var(&simConfig.YesProbability, "yes", simConfig.YesProbability, "probability of answering yes")
	cmd.Flags().DurationVar(&simConfig.MaxClockStep, "clock-step", simConfig.MaxClockStep, "longest simulated time between two operations")
	cmd.Flags().Int64Var(&simConfig.Seed, "random-seed", simConfig.Seed, "seed of the scenario generator")

	return cmd
}

func runSimulation(ctx context.Context, opts rootOptions, simConfig simulation.Config, out io.Writer) (err error) {
	env, closeAll, err := openEnvironment(ctx, opts)
	defer func() { err = errors.Join(err, closeAll()) }()

	if err != nil {
		return err
	}

	sim, err := simulation.New(
		env.registry,
		env.journal,
		simConfig,
		simulation.WithInstrumentation(env.instrumentation),
		simulation.WithLogger(env.logger),
	)
	if err != nil {
		return err
	}

	report, runErr := sim.Run(ctx)
	if _, err = fmt.Fprint(out, report.String()); err != nil {
		return err
	}

	return runErr
}
