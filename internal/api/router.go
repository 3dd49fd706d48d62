package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wilideparisdenode/bloggerBackend/internal/auth"
	"github.com/wilideparisdenode/bloggerBackend/internal/config"
	"github.com/wilideparisdenode/bloggerBackend/internal/repository"
	"github.com/wilideparisdenode/bloggerBackend/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, repos *repository.Repositories, signer auth.TokenSigner, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	userHandler := NewUserHandler(services, log)
	articleHandler := NewArticleHandler(services, cfg, log)

	authenticated := requireAuth(signer, repos.User)

	// Health check
	router.GET("/health", healthCheck)

	// API v1
	v1 := router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		profile := v1.Group("/profile", authenticated)
		{
			profile.GET("", userHandler.GetMe)
			profile.PUT("", userHandler.UpdateMe)
			profile.PUT("/password", userHandler.ChangePassword)
		}

		users := v1.Group("/users")
		{
			users.GET("/:id", userHandler.GetUser)
			users.DELETE("/:id", authenticated, userHandler.DeleteUser)
		}

		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.ListArticles)
			articles.GET("/:id", articleHandler.GetArticle)
			articles.POST("", authenticated, articleHandler.CreateArticle)
			articles.PUT("/:id", authenticated, articleHandler.UpdateArticle)
			articles.DELETE("/:id", authenticated, articleHandler.DeleteArticle)
			articles.POST("/:id/like", authenticated, articleHandler.ToggleLike)
			articles.POST("/:id/comments", authenticated, articleHandler.AddComment)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "blogger-backend",
	})
}
