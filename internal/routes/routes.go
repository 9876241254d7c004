package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/inventory-api/internal/handlers"
	"github.com/freshmart/inventory-api/internal/middleware"
)

// CORSMiddleware tells the browser the frontend origin may call this API,
// including the Authorization header used for bearer tokens.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouter wires every route. Login, category/product reads and stored
// files are public; everything mutating sits behind the bearer middleware.
func SetupRouter(h *handlers.Handlers, corsOrigin string) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware(corsOrigin))

	// --- Public Routes ---
	router.POST("/login", h.Login)

	router.GET("/categories", h.GetAllCategories)
	router.GET("/categories/:id", h.GetCategory)

	router.GET("/products", h.ListProducts)
	router.GET("/products/:id", h.GetProduct)

	// Uploaded product images: /storage/products/<generated-name>
	router.Static("/storage", h.StorageDir)

	// --- Protected Routes (Login Required) ---
	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(h.JWTSecret, h.Tokens))
	{
		auth.POST("/logout", h.Logout)
		auth.GET("/user", h.CurrentUser)

		auth.POST("/categories", h.CreateCategory)
		auth.DELETE("/categories/:id", h.DeleteCategory)

		auth.POST("/products", h.CreateProduct)
		auth.PUT("/products/:id", h.UpdateProduct)
		auth.PATCH("/products/:id", h.UpdateProduct)
		auth.DELETE("/products/:id", h.DeleteProduct)
	}

	return router
}
