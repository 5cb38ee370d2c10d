package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"warden/auth"
	"warden/bot/features/general"
	"warden/bot/features/membership"
	"warden/bot/features/owner"
	"warden/bot/features/rss"
	"warden/bot/features/settings"
	"warden/command"
	"warden/service"
)

const memberEventTimeout = 5 * time.Second

// Config holds bot configuration
type Config struct {
	Token          string
	Prefix         string
	OwnerID        string
	CommandTimeout time.Duration
	RatePerSecond  float64
	Burst          int
}

// Metrics records command outcomes and throttling
type Metrics interface {
	command.Metrics
	ThrottleMetrics
}

// Services are the domain services the bot's commands use
type Services struct {
	Configs       service.GuildConfigStore
	Members       service.MembershipService
	Subscriptions service.SubscriptionService
	Stats         service.StatsService
	Metrics       Metrics
}

type Bot struct {
	config     Config
	session    *discordgo.Session
	members    service.MembershipService
	registry   *command.Registry
	dispatcher *Dispatcher
}

// New builds the bot and registers its handlers. The gateway connection is opened by Open.
func New(config Config, services Services) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	directory := NewDirectory(dg)
	engine := auth.NewEngine(services.Configs, services.Members, directory, config.OwnerID)
	wrapper := command.NewWrapper(engine, services.Metrics, config.CommandTimeout)

	registry := command.NewRegistry()
	registry.MustRegister(general.NewFeature(registry, config.Prefix, dg.HeartbeatLatency).Commands()...)
	registry.MustRegister(settings.NewFeature(services.Configs, directory).Commands()...)
	registry.MustRegister(rss.NewFeature(services.Subscriptions).Commands()...)
	registry.MustRegister(membership.NewFeature(services.Members, config.OwnerID).Commands()...)
	registry.MustRegister(owner.NewFeature(services.Stats).Commands()...)

	bot := &Bot{
		config:   config,
		session:  dg,
		members:  services.Members,
		registry: registry,
		dispatcher: NewDispatcher(
			config.Prefix,
			registry,
			wrapper,
			NewUserLimiter(config.RatePerSecond, config.Burst),
			services.Metrics,
		),
	}

	dg.AddHandler(bot.onReady)
	dg.AddHandler(bot.onMessageCreate)
	dg.AddHandler(bot.onGuildMemberAdd)
	dg.AddHandler(bot.onGuildMemberUpdate)

	return bot, nil
}

// Open connects to the gateway
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":     r.User.Username,
		"guilds":   len(r.Guilds),
		"commands": len(b.registry.Visible()),
	}).Info("Connected to Discord")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	name, inv, ok := ParseMessage(b.dispatcher.Prefix(), m.Message)
	if !ok {
		return
	}

	if ch, err := s.State.Channel(m.ChannelID); err == nil {
		inv.ChannelName = ch.Name
	}
	inv.Replier = newMessageReplier(s, m.Message)

	b.dispatcher.Dispatch(context.Background(), name, inv)
}

func (b *Bot) onGuildMemberAdd(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	b.recordMember(e.GuildID, e.Member)
}

func (b *Bot) onGuildMemberUpdate(s *discordgo.Session, e *discordgo.GuildMemberUpdate) {
	b.recordMember(e.GuildID, e.Member)
}

// recordMember tracks a member seen through a gateway event
func (b *Bot) recordMember(guildID string, m *discordgo.Member) {
	if m == nil || m.User == nil || m.User.Bot {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), memberEventTimeout)
	defer cancel()

	if err := b.members.RecordMember(ctx, guildID, m.User.ID, memberName(m)); err != nil {
		log.WithFields(log.Fields{
			"guild":  guildID,
			"userID": m.User.ID,
		}).WithError(err).Warn("Failed to record guild member")
	}
}
