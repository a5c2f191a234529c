package handler

import (
	"e-wallet-core/internal/adapter/http/middleware"
	"e-wallet-core/internal/core/ports"
	"e-wallet-core/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	WalletSvc      ports.WalletService
	TransferSvc    ports.TransferService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Collector      *metrics.Collector // nil = metrics endpoint disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	if deps.Collector != nil {
		r.GET("/metrics", gin.WrapH(deps.Collector.Handler()))
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	walletHandler := NewWalletHandler(deps.WalletSvc)
	transferHandler := NewTransferHandler(deps.TransferSvc)

	v1.POST("/auth/pin", jwtAuth, authHandler.SetPIN)

	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.GET("/balance", walletHandler.GetBalance)
		wallets.POST("/deposit", walletHandler.Deposit)
		wallets.POST("/withdraw", walletHandler.Withdraw)
	}

	transfers := v1.Group("/transfers", jwtAuth)
	{
		transfers.POST("/request-otp", transferHandler.RequestOTP)
		transfers.POST("", transferHandler.Commit)
	}

	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.GET("", walletHandler.ListTransactions)
	}

	return r
}
