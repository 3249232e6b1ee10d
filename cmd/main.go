package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apictx "github.com/cosmostic/cosmostic-server/internal/api/http/context"
	"github.com/cosmostic/cosmostic-server/internal/api/http/handler"
	"github.com/cosmostic/cosmostic-server/internal/api/http/middleware"
	"github.com/cosmostic/cosmostic-server/internal/api/http/router"
	"github.com/cosmostic/cosmostic-server/internal/auth"
	"github.com/cosmostic/cosmostic-server/internal/config"
	"github.com/cosmostic/cosmostic-server/internal/logger"
	"github.com/cosmostic/cosmostic-server/internal/model"
	"github.com/cosmostic/cosmostic-server/internal/mojang"
	"github.com/cosmostic/cosmostic-server/internal/repository/postgres"
	"github.com/cosmostic/cosmostic-server/internal/server"
	"github.com/cosmostic/cosmostic-server/internal/service"
	storage "github.com/cosmostic/cosmostic-server/internal/storage/minio"
	"github.com/cosmostic/cosmostic-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	capeRepo := postgres.NewCapeRepository(db)
	accessoryRepo := postgres.NewAccessoryRepository(db)
	userRepo := postgres.NewUserRepository(db)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	adminIDs, err := cfg.AdminIDs()
	if err != nil {
		logger.Fatal("failed to parse admin list", "error", err)
	}
	if len(adminIDs) == 0 {
		logger.Warn("admin list is empty, catalog management is disabled")
	}

	gate := auth.NewGate(adminIDs)
	tokenManager := token.NewJWT(cfg.JWT.Secret)
	ctxMgr := apictx.NewManager()
	profiles := mojang.New(cfg.Mojang.SessionURL)

	catalogService := service.NewCatalog(capeRepo, accessoryRepo, storageClient, logger)
	equipService := service.NewEquip(userRepo, capeRepo, accessoryRepo, profiles, logger)

	mux := router.New(
		handler.NewFetch(catalogService, logger),
		handler.NewManage(catalogService, gate, ctxMgr, logger),
		handler.NewUser(equipService, gate, ctxMgr, logger),
		middleware.NewAuthenticate(tokenManager, ctxMgr, logger),
		middleware.NewLogging(logger),
	)

	httpServer := server.NewHTTPServer(mux, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
