package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/obsbot/logbot/config"
	"github.com/obsbot/logbot/internal/delivery/telegram"
	"github.com/obsbot/logbot/internal/infrastructure/analyzer"
	"github.com/obsbot/logbot/internal/infrastructure/benchmark"
	"github.com/obsbot/logbot/internal/infrastructure/logfetch"
	"github.com/obsbot/logbot/internal/infrastructure/state"
	"github.com/obsbot/logbot/internal/infrastructure/storage"
	"github.com/obsbot/logbot/internal/usecase"
	"github.com/obsbot/logbot/pkg/logger"
)

const httpTimeout = 60 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Loading configuration failed: %v", err)
	}
	logger.Init(cfg.Debug)
	logger.InfoLogger.Println("Starting OBS log bot...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// No catalog, no matching: loading failure is fatal.
	catalog, err := benchmark.Load(cfg.Bot.CPUDBPath, cfg.Bot.GPUDBPath)
	if err != nil {
		log.Fatalf("Loading benchmark catalogs failed: %v", err)
	}

	stateStore, err := state.Open(cfg.Bot.StateFilePath)
	if err != nil {
		log.Fatalf("Opening state file failed: %v", err)
	}
	if !stateStore.GetBool("hw_check_initialized", false) {
		_ = stateStore.SetBool("hw_check_enabled", cfg.Bot.HWCheckEnabled)
		_ = stateStore.SetBool("hw_check_initialized", true)
	}

	db, err := storage.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Connecting to database failed: %v", err)
	}
	defer db.Close()

	statsRepo, err := storage.NewPostgresStatsRepository(db, cfg.Bot.StatsTable)
	if err != nil {
		log.Fatalf("Setting up stats repository failed: %v", err)
	}

	stats := usecase.NewStatsAggregator(statsRepo)
	if err := stats.Load(ctx); err != nil {
		logger.ErrorLogger.Printf("Loading hardware stats failed: %v", err)
	}

	limiter := usecase.NewRateLimiter(time.Duration(cfg.Bot.CooldownSeconds * float64(time.Second)))
	supporters := make(map[int64]struct{}, len(cfg.Bot.Supporters))
	for _, id := range cfg.Bot.Supporters {
		supporters[id] = struct{}{}
	}
	resolver := usecase.NewResolver(limiter, cfg.Bot.ChannelBlacklist, func(userID int64) bool {
		_, ok := supporters[userID]
		return ok
	})

	pipeline := usecase.NewLogAnalysisUseCase(
		resolver,
		logfetch.NewFetcher(httpTimeout),
		analyzer.NewClient(cfg.Bot.AnalyzerEndpoint, httpTimeout),
		usecase.NewMatcher(catalog, stats),
		usecase.NewRatingEngine(),
		stats,
		stateStore,
	)

	handler, err := telegram.NewBotHandler(cfg.TelegramToken, cfg.Bot.Admins, pipeline)
	if err != nil {
		log.Fatalf("Creating bot handler failed: %v", err)
	}
	logger.InfoLogger.Printf("Bot ready: @%s", handler.GetBotUsername())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return stats.Run(ctx) })
	g.Go(func() error { return handler.Start(ctx) })

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.ErrorLogger.Printf("Bot stopped: %v", err)
	}
	logger.InfoLogger.Println("Bot shut down.")
}
