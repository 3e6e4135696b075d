// internal/router/router.go
package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/shopfront/ecommerce-backend/internal/config"
	"github.com/shopfront/ecommerce-backend/internal/handlers"
	"github.com/shopfront/ecommerce-backend/internal/middleware"
	"github.com/shopfront/ecommerce-backend/internal/repository"
	"github.com/shopfront/ecommerce-backend/internal/services"
)

// Services is everything the HTTP layer calls into. Accounts backs the
// per-request user lookup in AuthRequired.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Products *services.ProductService
	Orders   *services.OrderService
	Accounts repository.UserRepository
}

// Initialize builds the gin engine. The rate limiters stop their cleanup
// loops when ctx is done.
func Initialize(ctx context.Context, cfg *config.Config, svc Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	userHandler := handlers.NewUserHandler(svc.Users)
	productHandler := handlers.NewProductHandler(svc.Products)
	orderHandler := handlers.NewOrderHandler(svc.Orders)

	authRequired := middleware.AuthRequired(svc.Accounts)

	generalLimit := middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	authLimit := middleware.NewRateLimiter(ctx, rate.Limit(1), 5)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(generalLimit.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(authLimit.Middleware())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.GET("/profile", userHandler.GetProfile)
			users.PUT("/update-mobile", userHandler.UpdateMobile)
			users.PUT("/update-email", userHandler.UpdateEmail)
			users.PUT("/update-address", userHandler.UpdateAddress)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/all", productHandler.GetAllProducts)
			products.GET("/:id", productHandler.GetProduct)

			admin := products.Group("")
			admin.Use(authRequired, middleware.AdminRequired())
			{
				admin.POST("", productHandler.CreateProduct)
				admin.PUT("/:id", productHandler.UpdateProduct)
				admin.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		orders := api.Group("/orders")
		orders.Use(authRequired)
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/myorders", orderHandler.GetMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/:id/invoice", orderHandler.GetInvoice)
			orders.PUT("/:id/cancel", orderHandler.CancelOrder)
			orders.PUT("/:id/review", orderHandler.AddReview)
			orders.PUT("/:id/complaint", orderHandler.AddComplaint)

			admin := orders.Group("")
			admin.Use(middleware.AdminRequired())
			{
				admin.GET("", orderHandler.GetAllOrders)
				admin.PUT("/:id/status", orderHandler.UpdateStatus)
				admin.PUT("/:id/complaint/status", orderHandler.UpdateComplaintStatus)
				admin.DELETE("/deleteall", orderHandler.DeleteAllOrders)
			}
		}
	}

	return r
}
