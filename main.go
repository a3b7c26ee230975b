package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/clipforge/clipforge-engine/pkg/config"
	"github.com/clipforge/clipforge-engine/pkg/database"
	"github.com/clipforge/clipforge-engine/pkg/handlers"
	"github.com/clipforge/clipforge-engine/pkg/logging"
	"github.com/clipforge/clipforge-engine/pkg/middleware"
	"github.com/clipforge/clipforge-engine/pkg/repositories"
	"github.com/clipforge/clipforge-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Open the local store and bring the schema current
	db, err := database.Open(ctx, &database.Config{
		Path:          cfg.Database.Path,
		BusyTimeoutMS: cfg.Database.BusyTimeoutMS,
	})
	if err != nil {
		logger.Fatal("Failed to open local store", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := database.RunMigrations(db.DB, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	projectRepo := repositories.NewProjectRepository(db)
	assetRepo := repositories.NewAssetRepository(db)
	kvRepo := repositories.NewKVRepository(db)

	projectSvc := services.NewProjectService(projectRepo, logger)
	assetSvc := services.NewAssetService(assetRepo, projectRepo, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewProjectsHandler(projectSvc, logger).RegisterRoutes(mux)
	handlers.NewAssetsHandler(assetSvc, logger).RegisterRoutes(mux)
	handlers.NewStoreHandler(kvRepo, logger).RegisterRoutes(mux)

	// Serve static UI files for everything the gateway does not intercept
	mux.Handle("/", http.FileServer(http.Dir(cfg.UIDir)))

	// The gateway opens its store view fresh on every intercepted request.
	gateway := handlers.NewGateway(func(context.Context) (handlers.BlobStore, error) {
		return repositories.NewBlobStore(assetRepo, kvRepo), nil
	}, logger)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	handler := corsMiddleware.Handler(
		middleware.RequestLogger(logger)(
			gateway.Intercept(mux),
		),
	)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting clipforge-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env),
		zap.String("db_path", cfg.Database.Path))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
