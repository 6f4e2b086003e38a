package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet_connector/internal/app/service"
	"wallet_connector/internal/config"
	"wallet_connector/internal/infrastructure/httpclient"
	"wallet_connector/internal/infrastructure/keysync"
	nodeclient "wallet_connector/internal/infrastructure/network/client"
	"wallet_connector/internal/infrastructure/network/definition"
	"wallet_connector/internal/infrastructure/restapi"
	"wallet_connector/internal/pkg/logger"
	"wallet_connector/internal/pkg/metrics"
	"wallet_connector/internal/pkg/utils"
	"wallet_connector/internal/walletcontext"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogzap "github.com/samber/slog-zap/v2"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	// Bootstrap logging before the config is available
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// Route all slog output, the service loggers included, through zap so
	// both stacks share one sink
	logger.InitWithHandler(slogzap.Option{Level: slog.LevelInfo, Logger: zapLogger}.NewZapHandler())

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	// Reinstall the bridge with the configured level
	logger.InitWithHandler(slogzap.Option{Level: logger.ParseLevel(cfg.Logging.Level), Logger: zapLogger}.NewZapHandler())
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	svcLogger := logger.NewSlogAdapter()
	networks := definition.NewProvider()

	gateTimeout := time.Duration(cfg.Gate.RequestTimeoutMillis) * time.Millisecond
	gateClient := httpclient.NewGateClient(cfg.Gate.BaseURL, gateTimeout, zapLogger)
	zapLogger.Info("Gate client initialized", zap.String("base_url", cfg.Gate.BaseURL))

	spotTimeout := time.Duration(cfg.Spot.RequestTimeoutMillis) * time.Millisecond
	spotClient := httpclient.NewSpotClient(cfg.Spot.BaseURL, spotTimeout, zapLogger)
	zapLogger.Info("Spot client initialized", zap.String("base_url", cfg.Spot.BaseURL))

	explorerTimeout := time.Duration(cfg.Explorer.RequestTimeoutMillis) * time.Millisecond
	explorerClient := httpclient.NewExplorerClient(
		cfg.Explorer.BaseURL,
		explorerTimeout,
		zapLogger,
		cfg.Explorer.RateLimit,
		cfg.Explorer.BurstLimit,
	)
	zapLogger.Info("Explorer client initialized", zap.String("base_url", cfg.Explorer.BaseURL))

	nodeGateway := nodeclient.NewNodeGatewayProvider(cfg, svcLogger)
	keySync := keysync.NewFileDirectory(cfg.Accounts.File, svcLogger)
	walletCtx := walletcontext.NewStore(walletcontext.State{ChainID: 1})

	balanceHydrator := service.NewBalanceHydrator(gateClient, nodeGateway, networks, svcLogger)
	fiatHydrator := service.NewFiatValueHydrator(spotClient, svcLogger)
	historyHydrator := service.NewTransactionHistoryHydrator(explorerClient, cfg.Explorer.BatchSize, svcLogger)

	enricher := service.NewProgressiveAccountEnricher(keySync, balanceHydrator, svcLogger, cfg.Performance.MaxConcurrentRoutines)
	selectedAssembler := service.NewSelectedAccountAssembler(walletCtx, keySync, balanceHydrator, fiatHydrator, historyHydrator, svcLogger)
	feeEstimator := service.NewFeeEstimator(gateClient, nodeGateway, networks, svcLogger)
	txAssembler := service.NewTransactionAssembler(feeEstimator, walletCtx, svcLogger)
	zapLogger.Info("Services initialized")

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.Use(gin.Recovery())

	restapi.SetupRouter(
		router,
		restapi.NewAccountHandler(enricher, selectedAssembler, cfg.Spot.DefaultCurrency, svcLogger),
		restapi.NewTransactionHandler(txAssembler, svcLogger),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", "/metrics"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
