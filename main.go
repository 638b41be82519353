package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farm-finance/clock"
	"farm-finance/config"
	httpLayer "farm-finance/http"
	"farm-finance/repository"
	"farm-finance/service"
)

func main() {
	cfg := config.Load()

	farmRepo := repository.NewFarmRepositoryMemory()
	dealRepo := repository.NewDealRepositoryMemory()
	listingRepo := repository.NewListingRepositoryMemory()
	historyRepo := repository.NewHistoryRepositoryMemory()

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr)
	} else {
		cache = repository.NewMockCache()
	}

	notifier := service.NewHostNotifier(cfg.HostEventURL)

	historyService := service.NewCreditHistoryService(historyRepo)
	scoreService := service.NewCreditScoreService(farmRepo, dealRepo, historyService, cache)
	financeManager := service.NewFinanceManager(farmRepo, dealRepo, historyRepo, scoreService, notifier)
	termService := service.NewTermRecommendationService(scoreService)

	var rng *rand.Rand
	if cfg.RandomSeed != 0 {
		rng = rand.New(rand.NewSource(cfg.RandomSeed))
	}
	saleManager := service.NewSaleManager(listingRepo, farmRepo, notifier, rng)

	gameClock := clock.New(financeManager, saleManager)
	if cfg.ClockSchedule != "" {
		if err := gameClock.StartAuto(cfg.ClockSchedule); err != nil {
			log.Fatalf("Failed to start game clock: %v", err)
		}
		defer gameClock.Stop()
	}

	financeHandler := httpLayer.NewFinanceHandler(financeManager, termService)
	creditHandler := httpLayer.NewCreditHandler(scoreService, historyService)
	saleHandler := httpLayer.NewSaleHandler(saleManager)
	clockHandler := httpLayer.NewClockHandler(gameClock)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	// Preview endpoints absorb one request per slider movement, so they
	// get a wider budget than the mutating routes.
	previewLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRequests*4, cfg.RateLimitWindow)

	limited := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(rateLimiter, h)
	}
	previewLimited := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(previewLimiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/finance/preview", previewLimited(financeHandler.Preview))
	mux.Handle("/finance/deals", limited(financeHandler.Deals))
	mux.Handle("/finance/payoff", limited(financeHandler.PayOff))
	mux.Handle("/finance/recommend-term", previewLimited(financeHandler.RecommendTerm))
	mux.Handle("/credit/report", limited(creditHandler.Report))
	mux.Handle("/sale/listings", limited(saleHandler.Listings))
	mux.Handle("/sale/respond", limited(saleHandler.Respond))
	mux.Handle("/clock/advance", limited(clockHandler.Advance))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Finance engine listening on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
