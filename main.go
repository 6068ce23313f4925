package main

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"autoapply/config"
	"autoapply/controllers"
	"autoapply/database"
	"autoapply/middleware"
	"autoapply/models"
	"autoapply/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.GetAppConfig()

	profile, err := models.LoadProfile(cfg.ProfileFilePath)
	if err != nil {
		log.Printf("Could not load profile from %s: %v", cfg.ProfileFilePath, err)
		profile = &models.UserProfile{}
	}
	if cfg.ResumeFilePath != "" {
		profile.ResumeFilePath = cfg.ResumeFilePath
	}

	var llm services.LLMClient
	if cfg.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Could not create Gemini client: %v", err)
		}
		llm = gemini
	} else {
		log.Println("GEMINI_API_KEY not set, form analysis disabled")
	}

	// Run history and accounts are optional: without a database the apply
	// endpoint still works, it just does not persist runs.
	var store *services.ApplicationStore
	var userModel *models.UserModel
	if cfg.Database.DBName != "" {
		db, err := database.Connect(cfg.Database.Host, strconv.Itoa(cfg.Database.Port),
			cfg.Database.User, cfg.Database.Password, cfg.Database.DBName)
		if err != nil {
			log.Fatalf("Could not connect to database: %v", err)
		}
		if err := database.CreateTables(db); err != nil {
			log.Fatalf("Could not create tables: %v", err)
		}
		store = services.NewApplicationStore(db)
		userModel = models.NewUserModel(db)
	} else {
		log.Println("DB_NAME not set, running without persistence")
	}

	jwtService := services.NewJWTService(cfg.JWTSecret)
	fetcher := services.NewResumeFetcher()

	var factory services.BrowserFactory = services.NewPlaywrightBrowser
	applyController := controllers.NewApplyController(profile, llm, factory, store, fetcher,
		cfg.Headless, cfg.WorkdayAccountPassword)

	limiters := middleware.CreateRateLimiters()

	r := gin.Default()
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.MaxRequestSize(1 << 20))
	r.Use(middleware.ValidateContentType("application/json"))
	r.Use(limiters["general"].Limit())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if userModel != nil {
		authController := controllers.NewAuthController(userModel, jwtService)
		auth := r.Group("/api/auth")
		auth.Use(limiters["auth"].Limit())
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		protected := r.Group("/api")
		protected.Use(middleware.Auth(jwtService))
		protected.POST("/apply", limiters["apply"].Limit(), applyController.Apply)
		protected.GET("/applications", applyController.ListApplications)
	} else {
		// Without accounts the apply endpoint is open; only run this way
		// locally.
		r.POST("/api/apply", limiters["apply"].Limit(), applyController.Apply)
		r.GET("/api/applications", applyController.ListApplications)
	}

	log.Printf("Listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
