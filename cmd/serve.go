package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"SwipeEstate/config"
	"SwipeEstate/routes"
	"SwipeEstate/services"
	"SwipeEstate/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, "swipe-estate-api")
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := openDatabase(cfg, logger)
			if err != nil {
				return err
			}
			tokens, err := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e := routes.NewServer(routes.App{
				Environment: cfg.Environment,
				Logger:      logger,
				Accounts:    services.NewAccountService(db, tokens, logger),
				Listings:    services.NewListingService(db, listingCache(ctx, cfg, logger), logger),
				Preferences: services.NewPreferenceService(db, logger),
				Favorites:   services.NewFavoriteService(db, logger),
				Leads:       services.NewLeadService(db, logger),
				Feed:        services.NewFeedService(db, logger),
			})

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

// listingCache returns nil when Redis is not configured or not reachable;
// listings are then served straight from the database.
func listingCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) *utils.QueryCache {
	if cfg.Redis.Addr == "" {
		return nil
	}
	client := utils.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, listing cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		return nil
	}
	return utils.NewQueryCache(client, cfg.ListingsCacheTTL)
}
