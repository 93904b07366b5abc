package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mafia-room/internal/bus"
	"mafia-room/internal/config"
	"mafia-room/internal/domain"
	"mafia-room/internal/kafka"
	"mafia-room/internal/room"
)

func main() {
	// -----------------
	// Initialization
	// -----------------

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("starting mafia room coordinator",
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
		zap.String("room_events_topic", cfg.RoomEventsTopic),
		zap.Int("active_players_number", cfg.ActivePlayersNumber),
	)

	producer, err := kafka.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaClientID, cfg.KafkaProducerTimeout)
	if err != nil {
		logger.Fatal("failed to create kafka producer", zap.Error(err))
	}

	roomID := fmt.Sprintf("%04d", rand.Intn(10000))
	mirror := bus.NewMirror(producer, roomID, logger)

	rules := domain.GameRules{
		ActivePlayersNumber: cfg.ActivePlayersNumber,
		MafiaNumber:         cfg.MafiaNumber,
		SheriffNumber:       cfg.SheriffNumber,
	}
	if err := rules.Validate(); err != nil {
		logger.Fatal("invalid game rules", zap.Error(err))
	}

	r := room.New(rules, room.Options{
		ID:                roomID,
		VotePhaseTimeout:  cfg.VotePhaseTimeout,
		NightPhaseTimeout: cfg.NightPhaseTimeout,
		Sink:              mirror,
		Logger:            logger,
	})
	logger.Info("room created", zap.String("room_id", r.ID()))

	// -----------------
	// Metrics endpoint
	// -----------------

	metricsAddr := fmt.Sprintf("%s:%d", cfg.ListenHost, cfg.ListenPort)
	metricsServer := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler()}
	go func() {
		logger.Info("metrics endpoint listening", zap.String("addr", metricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()

	// -----------------
	// Shutdown
	// -----------------

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	logger.Info("coordinator is running")
	<-sigCh
	logger.Info("shutdown signal received, initiating graceful shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Warn("error shutting down metrics server", zap.Error(err))
	}
	if err := mirror.Close(); err != nil {
		logger.Warn("error closing kafka producer", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
