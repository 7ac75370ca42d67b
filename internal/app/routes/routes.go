package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/manjito26/ESTOP-System/docs"
	"github.com/manjito26/ESTOP-System/internal/app/controllers"
	"github.com/manjito26/ESTOP-System/internal/app/middleware"
	"github.com/manjito26/ESTOP-System/internal/domain/services"
	"github.com/manjito26/ESTOP-System/internal/domain/services/container"
	"github.com/manjito26/ESTOP-System/internal/infrastructure/config"
)

// SetupRouter initializes and returns the configured router
func SetupRouter(db *gorm.DB, cfg *config.Config, users services.UserStore) *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})
	// Force UTF-8 JSON responses
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})

	serviceContainer := container.NewServiceContainer(db, cfg, users)

	middleware.InitAuthMiddleware(
		serviceContainer.GetService("jwt").(services.InterfaceJWTService),
		serviceContainer.GetService("redis").(services.InterfaceRedisService),
	)

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes configures all API routes
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes registers the routes reachable without a token.
// The public limiter lives on its own subgroup so it never stacks
// under the authenticated group's limiter.
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 10 requests per second per IP, bursts of 20
	public := api.Group("/")
	public.Use(middleware.IPRateLimiter(10, 20))

	public.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	public.GET("/health", controllers.HandleHealthFunc(container, "ping"))

	healthGroup := public.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container, "status"))

	// Login is tightened further against credential guessing
	authGroup := public.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10))
	authGroup.POST("/login", controllers.HandleAuthFunc(container, "login"))
}

// registerAuthenticatedRoutes registers the routes behind the bearer
// token. Role checks live in the services, not here.
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	auth := api.Group("/")
	auth.Use(middleware.Authenticate())

	// 30 requests per second per IP, bursts of 50
	auth.Use(middleware.IPRateLimiter(30, 50))

	auth.POST("/auth/logout", controllers.HandleAuthFunc(container, "logout"))

	// Machine catalogue. These change rarely, so the list endpoints sit
	// behind a short response cache; status never does.
	machineGroup := auth.Group("/machines")
	machineGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleMachineFunc(container, "getMachines"))
	machineGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleMachineFunc(container, "getMachine"))
	machineGroup.GET("/:id/devices", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleMachineFunc(container, "getDevices"))

	auth.GET("/devices/:id/status", controllers.HandleMachineFunc(container, "getDeviceStatus"))

	// Test ledger
	testGroup := auth.Group("/tests")
	testGroup.POST("", controllers.HandleTestRecordFunc(container, "recordTest"))
	testGroup.GET("/history", controllers.HandleTestRecordFunc(container, "getHistory"))

	// Incident reports
	reportGroup := auth.Group("/reports")
	reportGroup.GET("", controllers.HandleReportFunc(container, "getReports"))
	reportGroup.GET("/summary", controllers.HandleReportFunc(container, "getSummary"))
	reportGroup.GET("/:id", controllers.HandleReportFunc(container, "getReport"))
	reportGroup.POST("", controllers.HandleReportFunc(container, "createReport"))
	reportGroup.PUT("/:id", controllers.HandleReportFunc(container, "updateReport"))

	// User administration
	userGroup := auth.Group("/users")
	userGroup.GET("", controllers.HandleUserFunc(container, "getUsers"))
	userGroup.POST("", controllers.HandleUserFunc(container, "addUser"))
	userGroup.DELETE("/:username", controllers.HandleUserFunc(container, "deleteUser"))
}
