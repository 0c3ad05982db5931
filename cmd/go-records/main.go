package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gitlab.com/msvechla/mux-prometheus/pkg/middleware"

	"github.com/buker/go-records/configs"
	"github.com/buker/go-records/internal/books"
	"github.com/buker/go-records/internal/models"
	"github.com/buker/go-records/internal/server"
	"github.com/buker/go-records/internal/store"
	"github.com/buker/go-records/internal/store/gormstore"
	"github.com/buker/go-records/internal/store/memory"
	"github.com/buker/go-records/internal/store/mongostore"
	"github.com/buker/go-records/internal/telemetry"
	"github.com/buker/go-records/internal/todos"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "go-records",
		Usage:   "book catalog and todo list services",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"GOAPP_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "books",
				Usage:  "serve the in-memory book catalog",
				Action: runBooks,
			},
			{
				Name:   "todos",
				Usage:  "serve the persisted todo list",
				Action: runTodos,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads config and initialises logging and sentry. The returned func flushes sentry.
func setup(c *cli.Context) (configs.Config, func(), error) {
	cfg, err := configs.Load(c.String("config"))
	if err != nil {
		return cfg, nil, err
	}

	telemetry.SetupLogging(cfg.Log.Level, cfg.Log.Format)

	flush, err := telemetry.InitSentry(telemetry.SentryOptions{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     version,
	})
	if err != nil {
		return cfg, nil, fmt.Errorf("sentry initialization failed: %w", err)
	}
	return cfg, flush, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runBooks(c *cli.Context) error {
	cfg, flush, err := setup(c)
	if err != nil {
		return err
	}
	defer flush()

	storeMetrics, err := telemetry.NewStoreMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	bookStore := store.InstrumentBooks(memory.NewBookStore(models.SeedBooks()), storeMetrics)
	if n, err := bookStore.Count(c.Context); err == nil {
		storeMetrics.SetSize(models.BookEntity, n)
	}

	sessionStore, err := books.NewSessionStore(cfg.Books.SessionSecret, cfg.Books.RedisAddr)
	if err != nil {
		return err
	}

	metricRouter, monitor := books.NewMetricsRouter()
	app := books.NewRouter(books.RouterConfig{
		Store:       bookStore,
		Sessions:    sessionStore,
		Metrics:     monitor,
		SwaggerHost: cfg.Swagger.Host,
	})

	ctx, stop := signalContext(c.Context)
	defer stop()

	return server.Run(ctx, cfg.ShutdownTimeout,
		server.Listener{Name: "books", Addr: cfg.Books.Addr, Handler: app},
		server.Listener{Name: "books metrics", Addr: cfg.Books.MetricsAddr, Handler: metricRouter},
	)
}

func runTodos(c *cli.Context) error {
	cfg, flush, err := setup(c)
	if err != nil {
		return err
	}
	defer flush()

	backend, err := openTodoStore(c.Context, cfg.Todos)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Warnf("Closing todo store: %v", err)
		}
	}()

	storeMetrics, err := telemetry.NewStoreMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	todoStore := store.InstrumentTodos(backend, storeMetrics)
	if n, err := todoStore.Count(c.Context); err == nil {
		storeMetrics.SetSize(models.TodoEntity, n)
	}

	app := todos.NewRouter(todos.RouterConfig{
		Store:           todoStore,
		Instrumentation: middleware.NewDefaultInstrumentation(),
	})

	ctx, stop := signalContext(c.Context)
	defer stop()

	return server.Run(ctx, cfg.ShutdownTimeout,
		server.Listener{Name: "todos", Addr: cfg.Todos.Addr, Handler: app},
		server.Listener{Name: "todos metrics", Addr: cfg.Todos.MetricsAddr, Handler: todos.NewMetricsRouter()},
	)
}

func openTodoStore(ctx context.Context, cfg configs.TodosConfig) (store.TodoStore, error) {
	switch cfg.Backend {
	case "mongo":
		client, err := mongostore.Connect(ctx, mongostore.ConnOptions{
			URI:      cfg.Mongo.URI,
			Username: cfg.Mongo.Username,
			Password: cfg.Mongo.Password,
			Endpoint: cfg.Mongo.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return mongostore.NewTodoStore(client, client.Database(cfg.Mongo.Database)), nil
	default:
		return gormstore.Open(cfg.Backend, cfg.DSN)
	}
}
