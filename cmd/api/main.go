package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hirely/matching-api/internal/apperrors"
	"hirely/matching-api/internal/config"
	"hirely/matching-api/internal/handlers"
	"hirely/matching-api/internal/repositories"
	"hirely/matching-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	applicantRepo := repositories.NewApplicantRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage and parsing
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize the ML side. Failures here do not stop the server:
	// CreateJob reports ServiceUnavailable until all three are loaded,
	// while the BM25-only endpoints keep working.
	embedder, err := services.NewGeminiEmbedder(cfg.Gemini.APIKey)
	if err != nil {
		log.Printf("❌ Failed to initialize embedding provider: %v", err)
		embedder = nil
	} else {
		log.Println("✅ Embedding provider initialized successfully")
	}

	clusterModel, err := services.LoadClusterModel(cfg.Cluster.CentroidsPath)
	if err != nil {
		log.Printf("❌ Failed to load cluster model: %v", err)
		clusterModel = nil
	} else {
		log.Printf("✅ Cluster model loaded: %d clusters, %d dims", clusterModel.NumClusters(), clusterModel.Dimension())
	}

	vectorStore, err := services.NewQdrantVectorStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Printf("❌ Failed to initialize Qdrant: %v", err)
		vectorStore = nil
	} else if embedder != nil {
		if err := vectorStore.InitCollection(uint64(embedder.Dimension())); err != nil {
			log.Printf("❌ Failed to initialize Qdrant collection: %v", err)
			vectorStore = nil
		} else {
			log.Println("✅ Qdrant initialized successfully")
		}
	}

	// Initialize matcher
	matcher := services.NewMatcherService(
		jobRepo,
		applicationRepo,
		applicantRepo,
		embedder,
		clusterModel,
		vectorStore,
	)
	if matcher.Ready() {
		log.Println("✅ Matching engine ready")
	} else {
		log.Println("⚠️  Matching engine degraded: job creation disabled until models load")
	}

	// Initialize vector sync worker
	var worker services.VectorSyncWorker
	if embedder != nil && vectorStore != nil {
		worker = services.NewVectorSyncWorker(
			jobRepo,
			embedder,
			vectorStore,
			cfg.Worker.Concurrency,
			cfg.Worker.SyncInterval,
		)
		worker.Start(context.Background())
		log.Println("✅ Vector sync worker started successfully")
	}

	// Initialize handlers
	jobHandler := handlers.NewJobHandler(jobRepo, matcher)
	applicantHandler := handlers.NewApplicantHandler(applicantRepo)
	applicationHandler := handlers.NewApplicationHandler(
		applicationRepo,
		applicantRepo,
		jobRepo,
		storageService,
		pdfParser,
		cfg.Storage.MaxFileSize,
	)
	matchHandler := handlers.NewMatchHandler(matcher, jobRepo, applicationRepo)
	shortlistHandler := handlers.NewShortlistHandler(matcher, jobRepo, applicationRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Hirely Matching API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		status := "ready"
		if !matcher.Ready() {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status": status,
			"time":   time.Now(),
		})
	})

	api.Get("/jobs", jobHandler.HandleList)
	api.Post("/jobs", jobHandler.HandleCreate)
	api.Delete("/jobs/:id", jobHandler.HandleDelete)

	api.Post("/applicants", applicantHandler.HandleRegister)
	api.Get("/applicants/:id", applicantHandler.HandleGet)

	api.Post("/applications", applicationHandler.HandleApply)
	api.Get("/applications/applicant/:id", applicationHandler.HandleListByApplicant)

	api.Get("/matchmaking/applicant/:id", matchHandler.HandleMatches)
	api.Get("/matchmaking/explain/:applicantId/:jobId", matchHandler.HandleExplain)

	api.Get("/shortlist/:jobId", shortlistHandler.HandleShortlist)
	api.Get("/shortlist/explain/:applicationId", shortlistHandler.HandleExplain)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Hirely Matching API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/jobs",
				"POST /api/applicants",
				"POST /api/applications",
				"GET /api/matchmaking/applicant/:id",
				"GET /api/shortlist/:jobId",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if worker != nil {
			worker.Stop()
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// customErrorHandler maps the core's error kinds onto HTTP status codes.
// The core itself never decides HTTP semantics.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrServiceUnavailable):
		code = fiber.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		code = fiber.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidInput):
		code = fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnreadableDocument):
		code = fiber.StatusUnprocessableEntity
	default:
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
