package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vipulchandan/BookManagement/assetstore"
	"github.com/vipulchandan/BookManagement/controllers"
	"github.com/vipulchandan/BookManagement/middlewares"
	"github.com/vipulchandan/BookManagement/storage"
	"github.com/vipulchandan/BookManagement/utils"
)

// Dependencies carries everything the router hands to the handlers.
type Dependencies struct {
	Stores storage.Stores
	Tokens *utils.TokenService
	Assets assetstore.Store

	// CoversDir, when set, is served at /covers so disk-stored cover
	// URLs resolve.
	CoversDir string

	// RateLimit/RateBurst configure the per-IP limiter; a zero RateLimit
	// disables it.
	RateLimit float64
	RateBurst int
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	if deps.RateLimit > 0 {
		r.Use(middlewares.RateLimit(deps.RateLimit, deps.RateBurst))
	}

	if deps.CoversDir != "" {
		r.Static("/covers", deps.CoversDir)
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to Book Management System!")
	})

	// User routes
	r.POST("/register", controllers.RegisterUser(deps.Stores.Users))
	r.POST("/login", controllers.LoginUser(deps.Stores.Users, deps.Tokens))

	auth := r.Group("/", middlewares.AuthMiddleware(deps.Tokens))
	{
		// Book routes
		auth.POST("/books", controllers.CreateBook(deps.Stores.Users, deps.Stores.Books, deps.Assets))
		auth.GET("/books", controllers.GetBooks(deps.Stores.Books))
		auth.GET("/books/:bookId", controllers.GetBookWithReviews(deps.Stores.Books, deps.Stores.Reviews))
		auth.PUT("/books/:bookId", controllers.UpdateBook(deps.Stores.Books))
		auth.DELETE("/books/:bookId", controllers.DeleteBook(deps.Stores.Books))
		auth.POST("/books/:bookId/reconcile", controllers.ReconcileBook(deps.Stores.Books, deps.Stores.Reviews))

		// Review routes
		auth.POST("/books/:bookId/review", controllers.CreateReview(deps.Stores.Books, deps.Stores.Reviews))
		auth.PUT("/books/:bookId/review/:reviewId", controllers.UpdateReview(deps.Stores.Books, deps.Stores.Reviews))
		auth.DELETE("/books/:bookId/review/:reviewId", controllers.DeleteReview(deps.Stores.Books, deps.Stores.Reviews))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "page not found"})
	})

	return r
}
