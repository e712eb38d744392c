package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/flicktrade/flicktrade/internal/config"
	"github.com/flicktrade/flicktrade/internal/handlers"
	"github.com/flicktrade/flicktrade/internal/market"
	"github.com/flicktrade/flicktrade/internal/models"
	"github.com/flicktrade/flicktrade/internal/portfolio"
	"github.com/flicktrade/flicktrade/internal/searches"
	"github.com/flicktrade/flicktrade/internal/selection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	if cfg.App.Env == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	catalog := market.NewCatalog(market.DefaultSeed())
	sim := market.NewSimulator(catalog, logger)
	store := portfolio.NewStore()
	broker := selection.NewBroker()
	searchSvc := searches.NewService(searches.NewRedisRepository(rdb), cfg.Searches.MaxRecent)

	// Feed ticks revalue held positions, which republishes the portfolio.
	sim.SubscribeTicks(func(st models.Stock) {
		if st.Symbol == "" {
			return
		}
		store.MarkPrices([]models.Stock{st})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.Run(ctx, time.Duration(cfg.Market.TickMS)*time.Millisecond)

	router := gin.Default()
	api := handlers.NewAPI(catalog, sim, store, broker, searchSvc, logger)
	api.Register(router)

	srv := &http.Server{Addr: cfg.App.Port, Handler: router}

	go func() {
		logger.Info("server started", zap.String("addr", cfg.App.Port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
