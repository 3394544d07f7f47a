// internal/router/router.go
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/artstylelab/backend/internal/config"
	"github.com/artstylelab/backend/internal/handlers"
	"github.com/artstylelab/backend/internal/middleware"
	"github.com/artstylelab/backend/internal/services"
)

// Initialize wires the full HTTP surface with the real generation backend.
func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	return InitializeWithGenerator(db, cfg, services.NewAIService(cfg))
}

// InitializeWithGenerator is Initialize with an injectable generation
// backend, used by tests.
func InitializeWithGenerator(db *gorm.DB, cfg *config.Config, generator handlers.ImageGenerator) (*gin.Engine, error) {
	storage, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	artworkService := services.NewArtworkService(db, storage)
	exhibitionService := services.NewExhibitionService(db)

	aiLimiter := middleware.NewFixedWindowLimiter(
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		cfg.RateLimit.MaxRequests,
	)
	ipLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.GlobalRPS), cfg.RateLimit.GlobalBurst)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	studentHandler := handlers.NewStudentHandler(userService)
	artworkHandler := handlers.NewArtworkHandler(artworkService, storage)
	exhibitionHandler := handlers.NewExhibitionHandler(exhibitionService)
	aiHandler := handlers.NewAIHandler(generator, artworkService, storage, aiLimiter)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.Identity())
	r.Use(ipLimiter.Middleware())
	r.Use(middleware.SanitizeJSON())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded files are served statically when storage is local.
	r.Static(cfg.Uploads.BaseURL, cfg.Uploads.Dir)

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		api.GET("/user/:userId", userHandler.GetUser)
		api.PUT("/user/:userId", userHandler.UpdateUser)

		api.GET("/students", studentHandler.ListStudents)
		api.PUT("/student/:id", studentHandler.UpdateStudent)
		api.DELETE("/student/:id", studentHandler.DeleteStudent)

		// The artwork surface answers under both its historical and current
		// prefixes.
		for _, prefix := range []string{"/gallery", "/artwork"} {
			g := api.Group(prefix)
			g.GET("", artworkHandler.List)
			g.POST("", artworkHandler.Upload)
			g.POST("/upload", artworkHandler.Upload)
			g.GET("/:id", artworkHandler.Get)
			g.PUT("/:id", artworkHandler.Update)
			g.DELETE("/:id", artworkHandler.Delete)
		}
		api.GET("/works", artworkHandler.ListWorks)

		api.GET("/exhibitions", exhibitionHandler.List)
		api.POST("/exhibitions", exhibitionHandler.Create)
		api.GET("/exhibitions/:id", exhibitionHandler.Get)
		api.PUT("/exhibitions/:id", exhibitionHandler.Update)
		api.DELETE("/exhibitions/:id", exhibitionHandler.Delete)
		api.POST("/exhibitions/:id/publish", exhibitionHandler.Publish)
		api.POST("/exhibitions/:id/artwork/:artworkId", exhibitionHandler.AddArtwork)
		api.DELETE("/exhibitions/:id/artwork/:artworkId", exhibitionHandler.RemoveArtwork)

		api.POST("/ai/generate", aiHandler.Generate)
		api.POST("/ai/save-to-gallery", aiHandler.SaveToGallery)
	}

	return r, nil
}
