package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/console"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell/observable"
)

const version = "0.1.0"

type rootOptions struct {
	configPath string
	envFile    string
	seedPath   string
	staffID    uint64
	debug      bool
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:          "librarian",
		Short:        "Interactive circulation desk for a public library",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd.Context(), opts, in, out)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.seedPath, "seed", "", "catalog seed file, overrides seed_file from the configuration")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log at debug level")
	cmd.Flags().Uint64Var(&opts.staffID, "staff", 0, "staff member at the desk (default: the first one)")

	cmd.AddCommand(newSimulateCmd(&opts, out))

	return cmd
}

// environment is everything a desk session or a simulation runs against.
type environment struct {
	cfg             config.AppConfig
	logger          *slog.Logger
	instrumentation observable.Instrumentation
	journal         shell.Journal
	registry        *catalog.Registry
}

// openEnvironment loads the configuration and opens logging, observability, the journal and
// the seeded registry. The returned close function must be called even when err is not nil.
func openEnvironment(ctx context.Context, opts rootOptions) (env environment, closeAll func() error, err error) {
	var closers []func() error

	closeAll = func() error {
		var closeErr error
		for i := len(closers) - 1; i >= 0; i-- {
			closeErr = errors.Join(closeErr, closers[i]())
		}

		return closeErr
	}

	if err = config.LoadDotEnv(opts.envFile); err != nil {
		return env, closeAll, fmt.Errorf("load env file: %w", err)
	}

	if env.cfg, err = config.Load(opts.configPath); err != nil {
		return env, closeAll, err
	}

	if opts.seedPath != "" {
		env.cfg.SeedFile = opts.seedPath
	}

	if opts.debug {
		env.cfg.Log.Level = "debug"
	}

	logger, closeLog, err := config.OpenLogger(env.cfg.Log)
	if err != nil {
		return env, closeAll, err
	}

	env.logger = logger
	closers = append(closers, closeLog)

	providers, err := config.NewObservabilityProviders(ctx, env.cfg.Observability, version)
	if err != nil {
		return env, closeAll, fmt.Errorf("set up observability: %w", err)
	}

	closers = append(closers, func() error { return providers.Shutdown(context.WithoutCancel(ctx)) })

	env.instrumentation = providers.Instrumentation()
	env.instrumentation.Logger = logger

	journal, closeJournal, err := config.OpenJournal(ctx, env.cfg.Journal, logger, env.instrumentation.Metrics)
	if err != nil {
		return env, closeAll, fmt.Errorf("open journal: %w", err)
	}

	env.journal = journal
	closers = append(closers, closeJournal)

	if env.registry, err = catalog.NewRegistry(catalog.WithPolicy(env.cfg.Policy.LendingPolicy())); err != nil {
		return env, closeAll, err
	}

	if env.cfg.SeedFile != "" {
		seed, seedErr := catalog.LoadSeedFile(env.cfg.SeedFile)
		if seedErr != nil {
			return env, closeAll, seedErr
		}

		env.registry.Load(seed)
	}

	return env, closeAll, nil
}

func runSession(ctx context.Context, opts rootOptions, in io.Reader, out io.Writer) (err error) {
	env, closeAll, err := openEnvironment(ctx, opts)
	defer func() { err = errors.Join(err, closeAll()) }()

	if err != nil {
		return err
	}

	session, err := newApp(env.registry, env.journal, console.NewPrompter(in, out), out, env.instrumentation)
	if err != nil {
		return err
	}

	if err = session.selectDefaultStaff(core.ID(opts.staffID)); err != nil {
		return err
	}

	env.logger.Info("librarian session started",
		"journal_adapter", env.cfg.Journal.Adapter,
		"books", len(env.registry.Books()),
		"borrowers", len(env.registry.Borrowers()),
	)

	return session.run(ctx)
}
