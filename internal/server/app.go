// Package server initializes and runs the ranking backend: it wires the
// configuration, database, services, session store, import pipeline, and the
// HTTP server, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ymori23/ranking-server/internal/logging"
	"github.com/ymori23/ranking-server/internal/server/config"
	"github.com/ymori23/ranking-server/internal/server/httpapi"
	"github.com/ymori23/ranking-server/internal/server/importer"
	"github.com/ymori23/ranking-server/internal/server/influencers"
	"github.com/ymori23/ranking-server/internal/server/sessions"
	"github.com/ymori23/ranking-server/internal/server/shared/db"
	"github.com/ymori23/ranking-server/internal/server/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	manager    db.RepositoryManager
	httpServer *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	manager, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userService := users.NewService(manager.Users())
	listingService := influencers.NewService(manager.Influencers())
	sessionStore := sessions.NewStore(c.SessionValidityDuration)

	var archiver importer.Archiver
	if a := importer.NewS3Archiver(c); a != nil {
		archiver = a
	}
	imp := importer.NewImporter(manager.Conn(), logger, archiver)

	gin.SetMode(gin.ReleaseMode)
	httpServer := httpapi.NewServer(
		c.EndpointAddrHTTP,
		logger,
		userService,
		sessionStore,
		listingService,
		imp,
		c.SessionValidityDuration,
	)

	return &App{config: c, logger: logger, manager: manager, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
