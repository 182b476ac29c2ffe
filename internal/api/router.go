package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/memories-backend-go/internal/config"
	"github.com/jengzang/memories-backend-go/internal/database"
	"github.com/jengzang/memories-backend-go/internal/handler"
	"github.com/jengzang/memories-backend-go/internal/middleware"
	"github.com/jengzang/memories-backend-go/internal/repository"
	"github.com/jengzang/memories-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers into the HTTP API
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	db := database.GetDB()
	mediaRepo := repository.NewMediaRepository(db)
	draftRepo := repository.NewDraftRepository(db)

	mediaService := service.NewMediaService(mediaRepo)
	memoryService := service.NewMemoryService(mediaRepo, draftRepo)

	mediaHandler := handler.NewMediaHandler(mediaService)
	memoryHandler := handler.NewMemoryHandler(memoryService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Memories Backend API is running",
		})
	})

	auth := middleware.Auth(cfg.JWTSecret)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	{
		media := api.Group("/media")
		{
			media.GET("", mediaHandler.GetMediaItems)
			media.POST("", auth, mediaHandler.IngestMediaItems)
		}

		memories := api.Group("/memories")
		{
			memories.GET("", memoryHandler.GetDrafts)
			memories.GET("/home", memoryHandler.GetHome)
			memories.POST("/rebuild", auth, memoryHandler.Rebuild)
		}
	}

	return r
}
