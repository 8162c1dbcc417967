// ABOUTME: Root command wiring config, logging, and the selected store.
// ABOUTME: Subcommands share the service built here before they run.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/todo/internal/charm"
	"github.com/harper/todo/internal/config"
	"github.com/harper/todo/internal/db"
	"github.com/harper/todo/internal/logging"
	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/ui"
	"github.com/spf13/cobra"
)

// skipStore marks commands that never touch local storage.
const skipStore = "skip-store"

type todoStore interface {
	service.Store
	Close() error
}

var (
	cfg    *config.Config
	logger *log.Logger
	store  todoStore
	svc    *service.Service
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A small todo list with a GraphQL API",
	Long: `todo keeps a list of short todos.

Use it directly from the command line, run the GraphQL API with
'todo serve', or open the terminal client with 'todo tui'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		logger = logging.New(os.Stderr, logging.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Prefix: "todo",
		})

		if cmd.Annotations[skipStore] == "true" {
			return nil
		}

		store, err = openStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		svc = service.New(store, service.WithLogger(logger))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database")
	rootCmd.PersistentFlags().String("backend", "", "storage backend: sqlite or charm")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return err
	}
	return nil
}

// execute runs args and closes the store whether or not the command failed.
// Cobra skips post-run hooks when RunE errors, so closing happens here.
func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	return err
}

func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// loadConfig layers flags over the file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		c.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		c.Backend = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		c.LogLevel = v
	}
	return c, c.Validate()
}

func openStore(c *config.Config) (todoStore, error) {
	if c.Backend == config.BackendCharm {
		client, err := newCharmClient(c)
		if err != nil {
			return nil, err
		}
		return charm.NewStore(client), nil
	}

	conn, err := db.Open(c.DBPath)
	if err != nil {
		return nil, err
	}
	return db.NewStore(conn), nil
}

func newCharmClient(c *config.Config) (*charm.Client, error) {
	return charm.NewClient(c.CharmHost,
		charm.WithAutoSync(c.AutoSync),
		charm.WithStaleThreshold(time.Duration(c.StaleThreshold)),
		charm.WithLogger(logger),
	)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", arg)
	}
	return id, nil
}
