package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"visa-checkout/internal/bot"
	"visa-checkout/internal/checkout"
	"visa-checkout/internal/config"
	"visa-checkout/internal/payment"
	"visa-checkout/internal/session"
	"visa-checkout/pkg/logger"
	"visa-checkout/pkg/redis"
)

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram checkout bot",
		Long:  "Run the Telegram checkout bot. Settings come from the environment (TELEGRAM_TOKEN, REDIS_ADDR, ...).",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.RequireBot(); err != nil {
				return err
			}

			zapLogger, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer zapLogger.Sync()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runBot(ctx, cfg, zapLogger)
		},
	}
}

func runBot(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) error {
	store, closeStore, err := newStore(ctx, cfg, zapLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	simulator := payment.NewSimulator(zapLogger, payment.WithDelay(cfg.PaymentDelay))

	api, err := bot.NewAPI(cfg.TelegramToken, cfg.BotDebug, zapLogger)
	if err != nil {
		return err
	}

	tgBot := bot.New(api, bot.Config{
		Store:      store,
		Payer:      simulator,
		ToastLimit: cfg.ToastLimit,
	}, zapLogger)

	if err := tgBot.Start(ctx); err != nil {
		return fmt.Errorf("bot stopped with error: %w", err)
	}

	zapLogger.Info("Bot shutdown gracefully")
	return nil
}

func newStore(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (checkout.Store, func(), error) {
	if cfg.RedisAddr == "" {
		zapLogger.Info("REDIS_ADDR not set, keeping sessions in memory")
		return session.NewMemoryStore(), func() {}, nil
	}

	client := redis.New(redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, zapLogger)
	if err := client.Connect(ctx, cfg.RedisConnectRetry); err != nil {
		client.Close()
		return nil, nil, err
	}
	return session.NewRedisStore(client, cfg.SessionTTL), client.Close, nil
}
