package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/dishahq/disha/internal/ai"
	"github.com/dishahq/disha/internal/config"
	"github.com/dishahq/disha/internal/datastore"
	"github.com/dishahq/disha/internal/db"
	"github.com/dishahq/disha/internal/embedcache"
	"github.com/dishahq/disha/internal/handler"
	"github.com/dishahq/disha/internal/job"
	"github.com/dishahq/disha/internal/middleware"
	"github.com/dishahq/disha/internal/repo"
	"github.com/dishahq/disha/internal/schedule"
	"github.com/dishahq/disha/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "disha",
		Short: "disha internship recommendation server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run disha server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.DB)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logutil.GetLogger(ctx).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("dataset_source", cfg.Dataset.Type),
	)

	listingRepo := repo.NewListingRepo(conn)
	pincodeRepo := repo.NewPincodeRepo(conn)
	embeddingRepo := repo.NewEmbeddingRepo(conn)
	cacheRepo := repo.NewEmbeddingCacheRepo(conn)

	providerArgs := cfg.AI.Data
	if providerArgs == nil {
		providerArgs = cfg.AI
	}
	aiProvider, err := ai.NewProvider(cfg.AI.Provider, providerArgs)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	embedder := ai.NewEmbedder(aiProvider, cfg.AI.EmbedModel)
	embedder = embedcache.WrapDBCacheToEmbedder(embedder, cacheRepo)
	embedder = embedcache.WrapLruCacheToEmbedder(embedder, cfg.AI.LRUSize, time.Duration(cfg.AI.LRUTTLMinutes)*time.Minute)

	source, err := datastore.New(cfg.Dataset)
	if err != nil {
		return fmt.Errorf("init dataset source: %w", err)
	}

	catalogService := service.NewCatalogService(listingRepo, pincodeRepo, embeddingRepo, embedder.Embed)
	embeddingService := service.NewEmbeddingService(embedder, embeddingRepo, listingRepo, cacheRepo)
	recommendService := service.NewRecommendService(catalogService, embedder, cfg.Recommend)
	importService := service.NewImportService(source, listingRepo, pincodeRepo)
	authService := service.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash,
		[]byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))

	if err := catalogService.Refresh(ctx); err != nil {
		// An empty database is a valid cold start; the first import
		// plus refresh will populate the snapshot.
		logutil.GetLogger(ctx).Warn("initial catalog refresh failed", zap.Error(err))
	}

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewEmbeddingSyncJob(embeddingService, cfg.Schedule.SyncBatchSize), cfg.Schedule.EmbeddingSync); err != nil {
		return err
	}
	if err := scheduler.AddJob(job.NewEmbeddingCacheCleanupJob(embeddingService, cfg.AI.CacheKeepDays), cfg.Schedule.CacheCleanup); err != nil {
		return err
	}
	if err := scheduler.AddJob(job.NewCatalogRefreshJob(catalogService), cfg.Schedule.CatalogRefresh); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Listings:  handler.NewListingHandler(catalogService),
		Recommend: handler.NewRecommendHandler(recommendService),
		Admin:     handler.NewAdminHandler(catalogService, embeddingService, importService, cfg.Schedule.SyncBatchSize),
		JWTSecret: []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
