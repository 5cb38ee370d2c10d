package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"warden/bot"
	"warden/config"
	"warden/database"
	"warden/events"
	"warden/infrastructure"
	"warden/infrastructure/observability"
	"warden/repository"
	"warden/service"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context())
	},
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting warden bot...")

	cfg := config.Get()

	log.Info("Running database migrations...")
	if err := database.RunMigrationsWithURL(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	configs := service.NewCachedGuildConfigs(service.NewGuildConfigService(uowFactory), cfg.ConfigCacheTTL)
	configs.SubscribeTo(eventBus)

	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	if servers := cfg.NATSServerList(); len(servers) > 0 {
		natsClient := infrastructure.NewNATSClient(servers)
		if err := natsClient.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsClient.Close()

		infrastructure.NewEventForwarder(natsClient, metrics, cfg.NATSSubject).Attach(eventBus)
		log.WithField("servers", servers).Info("Forwarding bot events to NATS")
	}

	discordBot, err := bot.New(bot.Config{
		Token:          cfg.DiscordToken,
		Prefix:         cfg.CommandPrefix,
		OwnerID:        cfg.OwnerID,
		CommandTimeout: cfg.CommandTimeout,
		RatePerSecond:  cfg.CommandRatePerSecond,
		Burst:          cfg.CommandBurst,
	}, bot.Services{
		Configs:       configs,
		Members:       service.NewMembershipService(uowFactory),
		Subscriptions: service.NewSubscriptionService(uowFactory),
		Stats:         service.NewStatsService(uowFactory),
		Metrics:       metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	if err := discordBot.Open(); err != nil {
		return err
	}

	log.WithField("environment", cfg.Environment).Info("Bot is running")
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics provider")
	}

	log.Info("Shutdown completed")
	return nil
}
