package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/muhammadolammi/hrassist/internal/analytics"
	"github.com/muhammadolammi/hrassist/internal/database"
	"github.com/muhammadolammi/hrassist/internal/llm"
	"github.com/muhammadolammi/hrassist/internal/metrics"
	"github.com/muhammadolammi/hrassist/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("error loading config. err: ", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	var cache llm.Cache
	if cfg.CacheTTL > 0 {
		tiered := llm.NewTieredCache(ctx, cfg.RedisURL, cfg.CacheMaxEntries, logger)
		defer tiered.Close()
		cache = tiered
	}

	client, err := llm.NewClient(ctx, llm.Config{
		APIKey:        cfg.GoogleAPIKey,
		Model:         cfg.LLMModel,
		Temperature:   cfg.LLMTemperature,
		RatePerMinute: cfg.LLMRatePerMinute,
		Cache:         cache,
		CacheTTL:      cfg.CacheTTL,
		Metrics:       m,
	})
	if err != nil {
		log.Fatalf("failed to create model client: %v", err)
	}

	screener, err := llm.NewScreener(ctx, llm.ScreenerConfig{
		APIKey:      cfg.GoogleAPIKey,
		Model:       cfg.ScreeningModel,
		Name:        "resume_screener",
		Description: "Scores resumes against job descriptions and parses them into structured fields.",
		Instruction: screeningInstruction(),
	}, logger)
	if err != nil {
		log.Fatalf("failed to create agent: %v", err)
	}

	apiCfg := &apiConfig{
		LLM:            client,
		Screener:       screener,
		Analytics:      analytics.NewLog(cfg.AnalyticsFile, logger),
		Metrics:        m,
		Logger:         logger,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	}

	if cfg.DBURL != "" {
		db, err := sql.Open("postgres", cfg.DBURL)
		if err != nil {
			log.Fatal("error opening db. err: ", err)
		}
		defer db.Close()
		apiCfg.Screenings = database.New(db)
	} else {
		logger.Info("DB_URL not set, screening history disabled")
	}

	if r2 := cfg.R2(); r2.Enabled() {
		archiver, err := storage.NewR2(ctx, r2)
		if err != nil {
			log.Fatal("error creating r2 client. err: ", err)
		}
		apiCfg.Archiver = archiver
	} else {
		archiver, err := storage.NewLocalDir(cfg.UploadDir)
		if err != nil {
			log.Fatal("error creating upload dir. err: ", err)
		}
		apiCfg.Archiver = archiver
	}

	if cfg.RabbitMQURL != "" {
		publisher, err := newAmqpPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer publisher.Close()
		apiCfg.Publisher = publisher
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiCfg.routes(reg),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Minute,
	}

	go func() {
		logger.Info("starting hrassist", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
