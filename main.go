package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/maps"

	"github.com/wanderlog/expenseclient/internal/cli"
	"github.com/wanderlog/expenseclient/internal/cli/create"
	deleteCmd "github.com/wanderlog/expenseclient/internal/cli/delete"
	exportCmd "github.com/wanderlog/expenseclient/internal/cli/export"
	"github.com/wanderlog/expenseclient/internal/cli/list"
	"github.com/wanderlog/expenseclient/internal/cli/login"
	"github.com/wanderlog/expenseclient/internal/cli/logout"
	"github.com/wanderlog/expenseclient/internal/cli/refresh"
	"github.com/wanderlog/expenseclient/internal/cli/update"
	"github.com/wanderlog/expenseclient/internal/cli/whoami"
	"github.com/wanderlog/expenseclient/internal/config"
	"github.com/wanderlog/expenseclient/internal/logger"
	"github.com/wanderlog/expenseclient/internal/service"
	"github.com/wanderlog/expenseclient/internal/session"
	"github.com/wanderlog/expenseclient/internal/storage"
	"github.com/wanderlog/expenseclient/internal/storage/memory"
	"github.com/wanderlog/expenseclient/internal/storage/sqlite"
)

var configPath string

var subcommands = map[string]cli.Command{
	"list":    list.NewCommand(),
	"create":  create.NewCommand(),
	"update":  update.NewCommand(),
	"delete":  deleteCmd.NewCommand(),
	"export":  exportCmd.NewCommand(),
	"login":   login.NewCommand(),
	"logout":  logout.NewCommand(),
	"whoami":  whoami.NewCommand(),
	"refresh": refresh.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", "expenseclient.toml", "Configuration file")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "unsupported command %s.\nUse 'help' command to print information about supported commands\n", commandName)
		os.Exit(1)
	}

	subcommandsFlagSets[commandName].Parse(os.Args[2:])

	conf, err := config.Parse(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration: %s\n", err.Error())
		os.Exit(1)
	}

	env, cleanup, err := buildEnv(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to set up the client: %s\n", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	if err := command.Run(context.Background(), env); err != nil {
		env.Logger.Error("Command failed", "command", commandName, "error", err.Error())
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// buildEnv wires the service binding the configuration asks for. Everything
// downstream of here only sees the interfaces.
func buildEnv(conf *config.Config) (*cli.Env, func(), error) {
	appLogger := logger.New(conf.Logger)

	sessionPath := conf.SessionFile
	if sessionPath == "" {
		var err error
		sessionPath, err = session.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}
	sessionStore := session.NewFileStore(sessionPath)

	env := &cli.Env{
		Config:  conf,
		Logger:  appLogger,
		Session: sessionStore,
		Stdout:  os.Stdout,
		Stdin:   os.Stdin,
	}
	cleanup := func() {}

	switch conf.Backend {
	case config.BackendMock:
		store, err := buildStore(conf, appLogger)
		if err != nil {
			return nil, nil, err
		}

		delays := service.DefaultDelays()
		if !conf.MockLatency {
			delays = service.NoDelays()
		}

		env.Expenses = service.NewMockExpenseService(store, storage.FixtureUserID, delays)
		env.Auth = service.NewMockAuthService(delays)
		cleanup = func() {
			if err := store.Close(); err != nil {
				appLogger.Error("Error closing store", "error", err)
			}
		}
	case config.BackendAPI:
		client := service.NewClient(
			conf.API.BaseURL,
			time.Duration(conf.API.TimeoutSeconds)*time.Second,
			sessionStore,
			func() {
				if err := sessionStore.Clear(); err != nil {
					appLogger.Error("Error clearing session", "error", err)
				}
			},
			appLogger,
		)
		env.Expenses = client
		env.Auth = client
	}

	return env, cleanup, nil
}

func buildStore(conf *config.Config, appLogger *logger.Logger) (storage.Store, error) {
	var store storage.Store
	var err error

	switch conf.Store.Driver {
	case config.StoreSQLite:
		store, err = sqlite.New(conf.Store.Source)
		if err != nil {
			return nil, err
		}
	default:
		store = memory.New()
	}

	ctx := context.Background()
	if err = store.ApplyMigrations(ctx, appLogger); err != nil {
		return nil, err
	}
	if err = store.SeedFixtures(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func printHelp() {
	printUsage()

	commandNames := maps.Keys(subcommands)
	sort.Strings(commandNames)

	for _, c := range commandNames {
		fmt.Printf("subcommand <%s>: %s\n", c, subcommands[c].Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: expenseclient <subcommand> [flags]\n\n")
}
