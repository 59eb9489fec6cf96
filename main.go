package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zaironnya/KrugoBot/internal/application/service"
	"github.com/zaironnya/KrugoBot/internal/application/usecase"
	"github.com/zaironnya/KrugoBot/internal/domain"
	"github.com/zaironnya/KrugoBot/internal/infrastructure/ffmpeg"
	"github.com/zaironnya/KrugoBot/internal/infrastructure/health"
	"github.com/zaironnya/KrugoBot/internal/infrastructure/storage"
	"github.com/zaironnya/KrugoBot/internal/infrastructure/telegram"
	"github.com/zaironnya/KrugoBot/internal/logging"
	teleui "github.com/zaironnya/KrugoBot/internal/presentation/telegram"
)

const statsWindow = 24 * time.Hour

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config, err := domain.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(config.Logging.Level, config.Logging.Development)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := ffmpeg.Check(); err != nil {
		logger.Fatal("ffmpeg not found, please install it", zap.Error(err))
	}

	store, err := storage.NewFileStorage(config.Storage.TempDir)
	if err != nil {
		logger.Fatal("storage", zap.Error(err))
	}

	bot, err := telegram.NewBot(config.Bot.Token, logger.Named("telegram"))
	if err != nil {
		logger.Fatal("telegram", zap.Error(err))
	}
	logger.Info("bot started", zap.String("username", bot.Self().UserName))

	msgs := domain.DefaultMessages()
	admission := domain.NewAdmissionSet()
	subscriptions := domain.NewSubscriptionCache(config.CacheTTL())
	stats := domain.NewStatsWindow(statsWindow)
	queue := domain.NewJobQueue()

	transcoder := ffmpeg.NewTranscoder(config.ProbeTimeout(), config.TranscodeTimeout())
	gate := service.NewAccessGate(bot, subscriptions, config.Bot.ChannelID, logger.Named("gate"))
	narrator := usecase.NewNarrator(bot, msgs)
	worker := usecase.NewWorker(queue, bot, transcoder, store, admission, stats, narrator, msgs, logger.Named("worker"))
	intake := usecase.NewIntake(admission, gate, bot, store, transcoder, queue, config, msgs, logger.Named("intake"))
	reporter := usecase.NewStatusReporter(stats, admission, store, msgs)
	handler := teleui.NewHandler(bot, intake, gate, reporter, msgs, config, logger.Named("handler"))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	probe := health.NewServer(config.Health.Port, logger.Named("health"))
	go func() {
		if err := probe.Listen(); err != nil {
			logger.Error("liveness listener stopped", zap.Error(err))
		}
	}()

	go worker.Run(ctx)

	for update := range bot.Updates(ctx) {
		go handler.HandleUpdate(ctx, update)
	}

	logger.Info("shutting down")
	queue.Close()
	if err := probe.Shutdown(); err != nil {
		logger.Warn("liveness shutdown", zap.Error(err))
	}
}
