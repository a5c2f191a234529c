package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"e-wallet-core/config"
	"e-wallet-core/internal/adapter/http/handler"
	"e-wallet-core/internal/adapter/storage/postgres"
	"e-wallet-core/internal/adapter/storage/redis"
	"e-wallet-core/internal/core/ports"
	"e-wallet-core/internal/service"
	"e-wallet-core/pkg/logger"
	"e-wallet-core/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage adapters ---
	pool, err := postgres.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close() //nolint:errcheck

	userRepo := postgres.NewUserRepo(pool)
	walletRepo := postgres.NewWalletRepo(pool)
	ledgerRepo := postgres.NewTransactionRepo(pool)
	transactor := postgres.NewTransactor(pool)
	challengeStore := redis.NewChallengeStore(redisClient)

	// --- Core services ---
	noteCodec, err := service.NewAESNoteCodec(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid AES key")
	}
	hashSvc := service.NewArgon2HashService()
	codeSvc := service.NewTOTPCodeService(cfg.OTP.Step, cfg.OTP.TTL, cfg.OTP.Skew)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	notifier := service.NewWebhookNotifier(
		cfg.Notifier.SinkURL,
		cfg.Notifier.Secret,
		&http.Client{Timeout: cfg.Notifier.Timeout},
		log,
	)
	collector := metrics.NewCollector()

	authSvc := service.NewAuthService(userRepo, walletRepo, hashSvc, tokenSvc, cfg.Wallet.Currency, log)
	walletSvc := service.NewWalletService(
		transactor, walletRepo, ledgerRepo,
		noteCodec, notifier, collector,
		cfg.Wallet.MaxDepositAmount, log,
	)
	transferSvc := service.NewTransferService(
		transactor, userRepo, walletRepo, ledgerRepo,
		challengeStore, codeSvc, hashSvc, noteCodec,
		notifier, collector, log,
	)

	// --- HTTP server ---
	router := handler.SetupRouter(handler.RouterDeps{
		AuthSvc:     authSvc,
		WalletSvc:   walletSvc,
		TransferSvc: transferSvc,
		TokenSvc:    tokenSvc,
		HealthCheckers: []ports.HealthChecker{
			postgres.NewHealthCheck(pool),
			redis.NewHealthCheck(redisClient),
		},
		Collector: collector,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
