package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"registryauth/config"
	"registryauth/internal/delivery/plugin"
	"registryauth/internal/infra/auth"
	logs "registryauth/internal/infra/log"
	"registryauth/internal/infra/persistence/database"
	"registryauth/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Supported subcommands:
// - migrate: create the users/groups/group_users tables
// - adduser: register the first user of an empty store, or check existing credentials
// - login:   authenticate and print the user's groups
// - passwd:  request a password change (not supported)
// - access:  evaluate an access/publish/unpublish hook

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (defaults to $AUTHCTL_CONFIG, then ./config.yaml)")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	c := newCLI(os.Stdin, os.Stdout, int(os.Stdin.Fd()))
	if err := c.run(context.Background(), *configPath, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: authctl [-config path] <command> [flags]

Commands:
  migrate                                     Create the auth tables
  adduser -user NAME                          Add the first user, or check credentials
  login   -user NAME                          Authenticate and list groups
  passwd  -user NAME                          Change password (not supported)
  access  -user NAME -package PKG [-action A] Check access, publish or unpublish`)
}

func injectInfra(configPath string) fx.Option {
	return fx.Options(
		fx.Provide(
			func() (*config.Config, error) {
				if configPath == "" {
					return config.New()
				}

				return config.Load(configPath)
			},
			logs.New,
			database.New,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			fxLogger := &fxevent.SlogLogger{Logger: logger}
			fxLogger.UseLogLevel(slog.LevelDebug)

			return fxLogger
		}),
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		database.NewUserRepository,
		database.NewGroupRepository,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewPBKDF2Hasher,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAuthService,
		impl.NewAccessService,
	)
}

func injectDelivery() fx.Option {
	return plugin.Module
}

// appOptions assembles the full plugin graph.
func appOptions(configPath string) fx.Option {
	return fx.Options(
		injectInfra(configPath),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
	)
}

// withApp starts the graph, hands the populated targets to fn, and stops the graph.
func withApp(ctx context.Context, opts fx.Option, fn func() error) (err error) {
	app := fx.New(opts)
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "failed to build application")
	}

	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start application")
	}
	defer func() {
		if stopErr := app.Stop(ctx); stopErr != nil && err == nil {
			err = errors.Wrap(stopErr, "failed to stop application")
		}
	}()

	return fn()
}
