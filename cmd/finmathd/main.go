package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jasonlvhit/gocron"

	"finmath"
	"finmath/api"
	"finmath/calendar"
	"finmath/config"
	"finmath/store"
)

func main() {
	cfg, err := config.Load(os.Getenv("FINMATH_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	repo, err := store.NewBondRepository(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	if cfg.BondsFile != "" {
		if err := repo.SeedFromJSON(ctx, cfg.BondsFile); err != nil {
			log.Printf("bond seed skipped: %v", err)
		}
	}

	cal := calendar.New(cfg.Database.DSN())
	if err := cal.LoadHolidays(ctx); err != nil {
		log.Printf("could not load holidays: %v", err)
	}
	cal.ScheduleDailyReload()
	go func() {
		<-gocron.Start()
	}()

	var cache store.Cache
	if cfg.RedisAddr != "" {
		cache = store.NewRedisCache(cfg.RedisAddr)
	} else {
		cache = store.NewMemoryCache()
	}

	var index *store.IndexSeries
	if cfg.IndexURL != "" {
		index, err = store.LoadIndexSeries(cfg.IndexURL, cfg.IndexFile, 5*24*time.Hour)
		if err != nil {
			log.Printf("adjustment index unavailable: %v", err)
		}
	}

	solver := finmath.SolverConfig{
		InitialGuess:  cfg.Solver.InitialGuess,
		Tolerance:     cfg.Solver.Tolerance,
		MaxIterations: cfg.Solver.MaxIterations,
	}
	srv := api.NewServer(repo, cache, cal, index, solver, cfg.SettlementOffset)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("finmath API listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("error starting server: %v", err)
		return
	case <-quit:
		log.Println("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("error during server shutdown: %v", err)
	}
	log.Println("server exited")
}
