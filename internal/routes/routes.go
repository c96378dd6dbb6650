package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"adeybloom-backend/internal/handlers"
	"adeybloom-backend/internal/repository"
)

func RegisterRoutes(router *gin.Engine, repo *repository.ProductRepository) {
	router.Use(requestID())

	h := handlers.NewProductHandler(repo)

	router.GET("/", handlers.Root)

	api := router.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/db/status", h.DBStatus)
	}
}

// requestID propaga o genera un X-Request-ID por petición.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
