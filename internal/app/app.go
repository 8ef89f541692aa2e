package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/cors"

	"github.com/drstein77/goldcatalog/internal/bdkeeper"
	"github.com/drstein77/goldcatalog/internal/config"
	"github.com/drstein77/goldcatalog/internal/controllers"
	"github.com/drstein77/goldcatalog/internal/filekeeper"
	"github.com/drstein77/goldcatalog/internal/goldprice"
	"github.com/drstein77/goldcatalog/internal/logger"
	"github.com/drstein77/goldcatalog/internal/middleware"
	"github.com/drstein77/goldcatalog/internal/storage"
	"go.uber.org/zap"
)

type Server struct {
	srv    *http.Server
	ctx    context.Context
	keeper storage.Keeper
	Log    logger.Logger
}

// NewServer creates a new Server instance with the provided context
func NewServer(ctx context.Context) *Server {
	server := new(Server)
	server.ctx = ctx
	return server
}

// Serve assembles the service and blocks until the listener stops: config,
// logger, catalog keeper (file or database), one-time catalog load, gold
// price client, controller, router. A catalog load failure is fatal; the
// process must not serve requests from a missing or corrupt catalog.
func (server *Server) Serve() {
	// create and initialize a new option instance
	option := config.NewOptions()
	option.ParseFlags()

	// get a new logger
	nLogger, err := logger.NewLogger(option.LogLevel())
	if err != nil {
		log.Fatalln(err)
	}
	server.Log = *nLogger

	// pick the catalog source: database when a DSN is configured,
	// otherwise the local json file
	var keeper storage.Keeper
	if option.DataBaseDSN() != "" {
		bdKeeper := bdkeeper.NewBDKeeper(server.ctx, option.DataBaseDSN, nLogger)
		if bdKeeper == nil {
			nLogger.Error("failed to connect to the catalog database")
			os.Exit(1)
		}
		keeper = bdKeeper
	} else {
		keeper = filekeeper.NewFileKeeper(option.CatalogFile, nLogger)
	}
	server.keeper = keeper

	// load the catalog once; it is immutable afterwards
	memoryStorage, err := storage.NewMemoryStorage(server.ctx, keeper, nLogger)
	if err != nil {
		nLogger.Error("failed to initialize catalog storage", zap.Error(err))
		os.Exit(1)
	}

	pricer := goldprice.NewClient(option.GoldAPIURL(), option.GoldAPITimeout(), nLogger)

	// create router and mount routes
	basecontr := controllers.NewBaseController(server.ctx, memoryStorage, pricer, nLogger)
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(nLogger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(option.CorsOrigins(), ","),
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Mount("/", basecontr.Route())

	// configure and start the server
	server.srv = startServer(r, option.RunAddr())
	nLogger.Info("Server started", zap.String("address", option.RunAddr()))

	if err := server.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		nLogger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

// Shutdown gracefully stops the server within the given timeout and releases
// the catalog keeper.
func (server *Server) Shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if server.srv != nil {
		if err := server.srv.Shutdown(ctx); err != nil {
			server.Log.Error("graceful shutdown failed", zap.Error(err))
		}
	}

	if server.keeper != nil {
		server.keeper.Close()
	}

	_ = server.Log.Sync()
}

func startServer(router *chi.Mux, address string) *http.Server {
	return &http.Server{
		Addr:    address,
		Handler: router,
	}
}
