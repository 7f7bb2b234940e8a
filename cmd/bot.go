package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"SwipeEstate/bot"
	"SwipeEstate/config"
	"SwipeEstate/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func BotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot against the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.ValidateBot(); err != nil {
				return err
			}
			logger, err := newLogger(cfg, "swipe-estate-bot")
			if err != nil {
				return err
			}
			defer logger.Sync()

			api, err := tgbotapi.NewBotAPI(cfg.Bot.TelegramToken)
			if err != nil {
				return fmt.Errorf("failed to connect to telegram: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var tokens bot.TokenStore
			switch cfg.Bot.TokenStore {
			case "redis":
				client := utils.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
				if err := client.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("failed to connect to redis: %w", err)
				}
				tokens = bot.NewRedisTokenStore(client)
			default:
				tokens = bot.NewMemoryTokenStore(cfg.Bot.TokenStoreLimit)
			}
			logger.Info("bot token store ready", zap.String("kind", cfg.Bot.TokenStore))

			backend := bot.NewBackendClient(cfg.Bot.BackendBaseURL, 10*time.Second, logger)
			dispatcher := bot.NewDispatcher(backend, tokens, bot.NewTelegramMessenger(api), logger)
			return bot.RunTelegram(ctx, api, dispatcher, logger)
		},
	}
}
