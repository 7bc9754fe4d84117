package routes

import (
	"net/http"
	"time"

	"coccigo/handlers"
	"coccigo/middleware"
	"coccigo/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login/logout.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/login", hb.Auth.LoginHandler)
	r.POST("/logout", hb.Auth.LogoutHandler)
}

// RegisterRequestRoutes registers travel request submission.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/requests")
	{
		api.Use(middleware.SessionAuth())
		api.POST("", hb.Request.SubmitRequestHandler)
	}
}

// RegisterOfferRoutes registers the offer ledger endpoints.
func RegisterOfferRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/offers")
	{
		api.Use(middleware.SessionAuth())
		api.GET("", hb.Offer.ListOffersHandler)
		api.POST("/:id/reserve", hb.Offer.ReserveOfferHandler)
		api.POST("/:id/cancel", hb.Offer.CancelOfferHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/admin")
	{
		adminGroup.Use(middleware.SessionAuth(), middleware.RequireAdmin())
		adminGroup.GET("/bots", hb.Admin.ListBotRunsHandler)
		adminGroup.POST("/users", hb.Admin.CreateUserHandler)
		adminGroup.POST("/ban", hb.Admin.BanUserHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterRequestRoutes(r, hb)
	RegisterOfferRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
