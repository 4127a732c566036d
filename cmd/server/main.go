package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"selfio-backend/internal/analysis"
	"selfio-backend/internal/config"
	"selfio-backend/internal/database"
	"selfio-backend/internal/handlers"
	"selfio-backend/internal/middleware"
	"selfio-backend/internal/openrouter"
	"selfio-backend/internal/postgres"
	"selfio-backend/internal/replicate"
	"selfio-backend/internal/services"
	"selfio-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// External service clients, constructed once and injected.
	replicateClient := replicate.NewClient(cfg.ReplicateAPIBaseURL, cfg.ReplicateAPIToken, cfg.ReplicateModel)
	openrouterClient := openrouter.NewClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	analyzer := analysis.NewAnalyzer(openrouterClient)

	storageClient, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	dbClient, err := postgres.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	generationService := services.NewGenerationService(dbClient, replicateClient, storageClient, analyzer)

	generateHandler := handlers.NewGenerateHandler(generationService)
	stylesHandler := handlers.NewStylesHandler(dbClient)
	facesHandler := handlers.NewFacesHandler(dbClient, storageClient)
	photosHandler := handlers.NewPhotosHandler(dbClient, storageClient)
	subscriptionHandler := handlers.NewSubscriptionHandler(dbClient)
	usersHandler := handlers.NewUsersHandler(dbClient)
	downloadHandler := handlers.NewDownloadHandler(storageClient)
	webhookHandler := handlers.NewWebhookHandler(cfg, dbClient)

	router := gin.Default()

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Style catalog is public: the picker renders before sign-in.
	router.GET("/api/v1/styles", stylesHandler.ListStyles)

	// Billing webhook (no auth, HMAC signature)
	router.POST("/api/v1/webhooks/billing", webhookHandler.HandleBillingWebhook)

	// Authenticated API
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.POST("/generate", generateHandler.Generate)

	api.POST("/faces", facesHandler.UploadFace)
	api.GET("/faces", facesHandler.ListFaces)
	api.DELETE("/faces/:face_id", facesHandler.DeleteFace)

	api.GET("/photos", photosHandler.ListPhotos)
	api.GET("/photos/:photo_id", photosHandler.GetPhoto)
	api.DELETE("/photos/:photo_id", photosHandler.DeletePhoto)

	api.GET("/subscription", subscriptionHandler.GetSubscription)
	api.POST("/sync-user", usersHandler.SyncUser)
	api.GET("/download", downloadHandler.Download)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
