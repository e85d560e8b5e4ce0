package handlers

import (
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Services bundles everything the router needs
type Services struct {
	Auth     *services.AuthService
	User     *services.UserService
	Product  *services.ProductService
	Cart     *services.CartService
	Purchase *services.PurchaseService
	Ticket   *services.TicketService
}

// NewRouter builds the gin engine with all middleware and routes wired
func NewRouter(cfg *config.Config, logger *zap.Logger, svc Services) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.User)
	productHandler := NewProductHandler(svc.Product)
	cartHandler := NewCartHandler(svc.Cart, svc.Purchase)
	ticketHandler := NewTicketHandler(svc.Ticket)

	requireAuth := middleware.RequireAuth(svc.Auth, svc.User)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/health", health)

		sessions := api.Group("/sessions")
		{
			sessions.POST("/register", authHandler.Register)
			sessions.POST("/login", authHandler.Login)
			sessions.POST("/request-password-reset", authHandler.RequestPasswordReset)
			sessions.POST("/reset-password", authHandler.ResetPassword)
			sessions.POST("/logout", requireAuth, authHandler.Logout)
			sessions.GET("/current", requireAuth, authHandler.Current)
		}

		users := api.Group("/users")
		{
			users.POST("", userHandler.Create)
			users.GET("", requireAuth, middleware.RequireAdmin(), userHandler.List)
			users.GET("/:id", requireAuth, middleware.RequireOwnershipOrAdmin(), userHandler.Get)
			users.PUT("/:id", requireAuth, middleware.RequireOwnershipOrAdmin(), userHandler.Update)
			users.PUT("/:id/password", requireAuth, middleware.RequireOwnershipOrAdmin(), userHandler.ChangePassword)
			users.DELETE("/:id", requireAuth, middleware.RequireAdmin(), userHandler.Delete)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("", requireAuth, middleware.RequireAdminOrPremium(), productHandler.Create)
			products.PUT("/:id", requireAuth, middleware.RequireAdminOrPremium(), productHandler.Update)
			products.DELETE("/:id", requireAuth, middleware.RequireAdminOrPremium(), productHandler.Delete)
		}

		carts := api.Group("/carts", requireAuth)
		{
			carts.GET("", cartHandler.Get)
			carts.DELETE("", cartHandler.Clear)
			carts.POST("/products/:pid", cartHandler.AddProduct)
			carts.PUT("/products/:pid", cartHandler.UpdateQuantity)
			carts.DELETE("/products/:pid", cartHandler.RemoveProduct)
			carts.POST("/purchase", cartHandler.Purchase)
		}

		tickets := api.Group("/tickets", requireAuth)
		{
			tickets.GET("", ticketHandler.List)
			tickets.GET("/:id", ticketHandler.Get)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found")
	})

	return router
}

// health handles GET /api/health
func health(c *gin.Context) {
	respondSuccess(c, http.StatusOK, "ok", gin.H{
		"timestamp": time.Now().UTC(),
	})
}
