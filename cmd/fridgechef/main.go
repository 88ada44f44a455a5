package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inikonoff/fridgechef/internal/bot"
	"github.com/inikonoff/fridgechef/internal/config"
	"github.com/inikonoff/fridgechef/internal/engine"
	"github.com/inikonoff/fridgechef/internal/health"
	"github.com/inikonoff/fridgechef/internal/storage"
	"github.com/inikonoff/fridgechef/internal/yandex"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Local runs load .env; in production the variables are already set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := yandex.NewClient(cfg.YandexAPIKey, cfg.YandexFolderID, log)
	gateway := yandex.NewGateway(client, log)
	store := storage.NewMemoryStore(log)
	eng := engine.New(store, gateway, log, engine.WithMaxHistory(cfg.MaxHistory))

	b, err := bot.New(cfg.TelegramToken, eng, log)
	if err != nil {
		return err
	}

	go func() {
		if err := health.New(cfg.Port, log).Run(ctx); err != nil {
			log.Warnf("health server: %v", err)
		}
	}()

	return b.Run(ctx)
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
