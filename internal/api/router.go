package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/markethub/marketplace-api/docs"
	"github.com/markethub/marketplace-api/internal/api/handler"
	"github.com/markethub/marketplace-api/internal/api/middleware"
	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
	"github.com/markethub/marketplace-api/internal/core/service"
	mongodb "github.com/markethub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/markethub/marketplace-api/internal/infrastructure/db/redis"
	"github.com/markethub/marketplace-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, images ports.ImageStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("markethub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	tokenTTL := time.Duration(cfg.JWTTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, throttle, cfg.JWTSecret, tokenTTL, log)
	productService := service.NewProductService(productRepo, userRepo, images, log)
	userService := service.NewUserService(userRepo, log)
	statsService := service.NewStatsService(productRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	userHandler := handler.NewUserHandler(userService)
	dashboardHandler := handler.NewDashboardHandler(statsService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(string(domain.RoleAdmin))

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- Product routes (reads are public, writes require a token) ---
	e.GET("/products", productHandler.List)
	e.GET("/products/categories", productHandler.Categories)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create, authRequired)
	e.PUT("/products/:id", productHandler.Update, authRequired)
	e.DELETE("/products/:id", productHandler.Delete, authRequired)

	// --- User management (admin only) ---
	e.GET("/users", userHandler.List, authRequired, adminOnly)
	e.PUT("/users/:id/role", userHandler.UpdateRole, authRequired, adminOnly)
	e.DELETE("/users/:id", userHandler.Delete, authRequired, adminOnly)

	// --- Dashboard ---
	e.GET("/dashboard/stats", dashboardHandler.Stats, authRequired)

	// --- Uploaded images (disk store only) ---
	if cfg.Uploads.Storage == "disk" {
		e.Static("/uploads", cfg.Uploads.Dir)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
