package main

import (
	"os"
	"strings"
	"time"

	"github.com/ekhata-app/ekhata/internal/config"
	"github.com/ekhata-app/ekhata/internal/handlers"
	"github.com/ekhata-app/ekhata/internal/repository"
	"github.com/ekhata-app/ekhata/internal/services"
	xhttp "github.com/ekhata-app/ekhata/pkg/http"
	"github.com/ekhata-app/ekhata/pkg/logger"
	"github.com/ekhata-app/ekhata/pkg/prom"
	"github.com/ekhata-app/ekhata/pkg/store"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := config.Load(argContainsEnvPath()); err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	// The store handle is built here and injected everywhere; nothing else
	// opens the database.
	db, err := store.Open(store.Config{
		Path:  config.Get().DBPath,
		Debug: config.Get().AppDebug,
	})
	if err != nil {
		logger.Error("failed to open store", "path", config.Get().DBPath, "error", err)
		return
	}
	defer db.Close()

	if err := db.AutoMigrate(repository.Entities()...); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		return
	}

	if addr := config.Get().MetricsAddr; addr != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed to register metrics", "error", err)
			return
		}
		go prom.ListenAndServe(addr, config.Get().MetricsURI)
	}

	customerRepo := repository.NewCustomerRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	productRepo := repository.NewProductRepository(db)
	reportRepo := repository.NewReportRepository(db)

	customerService := services.NewCustomerService(customerRepo)
	ledgerService := services.NewLedgerService(transactionRepo, productRepo, customerRepo)

	api := s.Router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(api, handlers.NewCustomerHandler(customerService))
	handlers.RegisterTransactionRoutes(api, handlers.NewTransactionHandler(ledgerService))
	handlers.RegisterReportRoutes(api, handlers.NewReportHandler(reportRepo))
	handlers.RegisterStatementRoutes(api, handlers.NewStatementHandler(customerService, ledgerService))
	handlers.RegisterHealthRoutes(api, handlers.NewHealthHandler())

	s.CloseOnSignal()
	logger.Info("starting ekhata api",
		"version", version,
		"commit", commit,
		"addr", config.Get().HTTPListenAddr,
		"db", config.Get().DBPath,
	)
	if err := s.ListenAndServe(config.Get().HTTPListenAddr); err != nil {
		logger.Error("http server stopped", "error", err)
	}
}

func argContainsEnvPath() string {
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "--env=") {
			return strings.TrimPrefix(arg, "--env=")
		}
	}
	return ""
}
