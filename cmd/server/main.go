package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"readnest/internal/blobstore"
	"readnest/internal/cache"
	"readnest/internal/config"
	"readnest/internal/database"
	"readnest/internal/handlers"
	"readnest/internal/repository"
	"readnest/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Reconcile managed tables up front; per-request calls are cheap
	// re-checks that also repair drift
	for _, table := range repository.ManagedTables {
		status, err := db.EnsureSchema(table)
		if err != nil {
			log.Fatalf("Failed to ensure schema for %s: %v", table.Name, err)
		}
		if status.Rebuilt {
			log.Printf("Rebuilt table %s", table.Name)
		}
		if len(status.StillMissing) > 0 {
			log.Fatalf("Table %s still missing columns: %s",
				table.Name, strings.Join(status.StillMissing, ","))
		}
	}

	log.Println("Schema reconciled")

	// Aggregate cache; absent redis degrades to always-miss
	var aggCache cache.Cache = cache.NewNoop()
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("Warning: redis unavailable (%v), running without cache", err)
		} else {
			defer redisCache.Close()
			aggCache = redisCache
			log.Printf("Aggregate cache connected (%s)", cfg.RedisAddr)
		}
	}

	// Photo blob store
	var blobs blobstore.Store
	switch strings.ToLower(cfg.BlobBackend) {
	case "s3":
		blobs, err = blobstore.NewS3(context.Background(), cfg.S3Bucket, cfg.S3Prefix)
	case "filesystem", "":
		blobs, err = blobstore.NewFilesystem(cfg.PhotosPath)
	default:
		log.Fatalf("Unsupported blob backend: %s", cfg.BlobBackend)
	}
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	// Initialize repositories
	childRepo := repository.NewChildRepository(db)
	readingRepo := repository.NewReadingRepository(db)
	homeworkRepo := repository.NewHomeworkRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	// Initialize services
	entryService := service.NewEntryService(db, readingRepo, aggCache)
	homeworkService := service.NewHomeworkService(db, homeworkRepo)
	statsService := service.NewStatsService(db, readingRepo, goalRepo, childRepo, aggCache, cfg.StatsCacheTTL)
	goalService := service.NewGoalService(db, goalRepo, aggCache)
	feedbackService := service.NewFeedbackService(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)

	// Initialize handlers
	middleware := handlers.NewMiddleware(cfg.AdminToken)
	entryHandler := handlers.NewEntryHandler(entryService)
	statsHandler := handlers.NewStatsHandler(statsService)
	homeworkHandler := handlers.NewHomeworkHandler(homeworkService, feedbackService)
	photoHandler := handlers.NewPhotoHandler(blobs, cfg.UploadMaxSize)
	adminHandler := handlers.NewAdminHandler(db, goalService)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", adminHandler.Health)
	mux.HandleFunc("GET /debug/schema", middleware.RequireAdmin(adminHandler.DebugSchema))
	mux.HandleFunc("POST /admin/migrate", middleware.RequireAdmin(adminHandler.Migrate))

	// Photo upload handshake
	mux.HandleFunc("POST /v1/uploads", photoHandler.CreateUpload)
	mux.HandleFunc("POST /v1/upload-file", photoHandler.UploadFile)
	mux.HandleFunc("GET /v1/photo", photoHandler.GetPhoto)

	// Reading entries and aggregates
	mux.HandleFunc("POST /v1/children/{id}/entries", entryHandler.CreateEntry)
	mux.HandleFunc("GET /v1/children/{id}/entries", entryHandler.ListEntries)
	mux.HandleFunc("GET /v1/children/{id}/daily-stats", statsHandler.DailyStats)
	mux.HandleFunc("POST /v1/children/{id}/goals", middleware.RequireAdmin(adminHandler.CreateGoal))
	mux.HandleFunc("DELETE /v1/entries/{id}", middleware.RequireAdmin(entryHandler.DeleteEntry))
	mux.HandleFunc("GET /v1/leaderboard", statsHandler.Leaderboard)

	// Homework
	mux.HandleFunc("POST /v1/homework/submit", homeworkHandler.Submit)
	mux.HandleFunc("GET /v1/homework/list", homeworkHandler.List)
	mux.HandleFunc("POST /v1/homework/analyze", homeworkHandler.Analyze)
	mux.HandleFunc("DELETE /v1/homework/{id}", middleware.RequireAdmin(homeworkHandler.Delete))

	// Wrap with CORS and logging middleware
	handler := handlers.Logging(handlers.CORS(mux))

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
