package http

import (
	"net/http"

	"github.com/motohub/dealership_service/internal/config"
	"github.com/motohub/dealership_service/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	authHandler *AuthHandler,
	partHandler *PartHandler,
	motorcycleHandler *MotorcycleHandler,
	checkoutHandler *CheckoutHandler,
	revisionHandler *RevisionHandler,
	reportHandler *ReportHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth
	router.POST("/login", authHandler.Login)

	// Parts routes
	parts := router.Group("/parts")
	parts.Use(AuthMiddleware(tokenService))
	{
		parts.POST("", partHandler.CreatePart)
		parts.GET("", partHandler.ListParts)
		parts.GET("/:id", partHandler.GetPart)
		parts.PUT("/:id", partHandler.UpdatePart)
		parts.DELETE("/:id", partHandler.DeletePart)
		parts.POST("/:id/transfer", partHandler.TransferPart)
	}

	// Motorcycles routes
	motorcycles := router.Group("/motorcycles")
	motorcycles.Use(AuthMiddleware(tokenService))
	{
		motorcycles.POST("", motorcycleHandler.CreateMotorcycle)
		motorcycles.GET("", motorcycleHandler.ListMotorcycles)
		motorcycles.GET("/:id", motorcycleHandler.GetMotorcycle)
		motorcycles.PUT("/:id", motorcycleHandler.UpdateMotorcycle)
		motorcycles.DELETE("/:id", motorcycleHandler.DeleteMotorcycle)
	}

	// Sales routes
	sales := router.Group("/")
	sales.Use(AuthMiddleware(tokenService))
	{
		sales.POST("/checkout", checkoutHandler.Checkout)
		sales.GET("/sales", checkoutHandler.ListCartSales)
		sales.GET("/sales/:id/invoice", checkoutHandler.GetInvoice)
		sales.POST("/sell-motorcycle", motorcycleHandler.SellMotorcycle)
		sales.GET("/motorcycle-sales", reportHandler.ListMotorcycleSales)
	}

	// Revisions routes
	revisions := router.Group("/revisions")
	revisions.Use(AuthMiddleware(tokenService))
	{
		revisions.POST("", revisionHandler.CreateRevision)
		revisions.GET("", revisionHandler.ListRevisions)
		revisions.GET("/:id", revisionHandler.GetRevision)
	}

	// Reports routes
	reports := router.Group("/reports")
	reports.Use(AuthMiddleware(tokenService))
	{
		reports.GET("/summary", reportHandler.SalesSummary)
		reports.GET("/sales.csv", reportHandler.ExportSalesCSV)
	}

	return &Router{router: router}, nil
}

func (r *Router) Serve(addr string) error {
	return r.router.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
