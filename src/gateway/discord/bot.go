package discord

import (
	"context"
	"fmt"
	"time"

	"progress-report-bot/src/helpers"
	"progress-report-bot/src/interfaces"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/models"

	"github.com/bwmarrin/discordgo"
)

const (
	startRetries    = 3
	startRetryDelay = 2 * time.Second
)

// HandlerFunc receives every interaction the bot sees.
type HandlerFunc func(ctx context.Context, it interfaces.IInteraction)

type Bot struct {
	Config  *models.MConfig
	Session *discordgo.Session
	Logger  *logger.Logger

	handler HandlerFunc
	style   EmbedStyle
	ctx     context.Context
}

// -----------------------------------------------------------------------------

func NewBot(cfg *models.MConfig, handler HandlerFunc, log *logger.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, helpers.NewGatewayError("failed to create discord session", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		Config:  cfg,
		Session: session,
		Logger:  log,
		handler: handler,
		style:   EmbedStyle{Footer: cfg.Discord.Footer, Color: cfg.Discord.EmbedColor},
		ctx:     context.Background(),
	}, nil
}

// -----------------------------------------------------------------------------

// Start opens the gateway connection and registers the slash commands.
// ctx bounds every interaction handled afterwards.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx

	b.Session.AddHandler(b.onReady)
	b.Session.AddHandler(b.onInteraction)

	err := helpers.RetryWithBackoff(ctx, b.Logger, "discord session open", startRetries, startRetryDelay, b.Session.Open)
	if err != nil {
		return helpers.NewGatewayError("failed to open discord session", err)
	}

	appID := b.Config.Discord.ApplicationID
	if appID == "" && b.Session.State != nil && b.Session.State.User != nil {
		appID = b.Session.State.User.ID
	}

	err = helpers.RetryWithBackoff(ctx, b.Logger, "command registration", startRetries, startRetryDelay, func() error {
		registered, err := b.Session.ApplicationCommandBulkOverwrite(appID, b.Config.Discord.GuildID, SlashCommands())
		if err == nil {
			b.Logger.Info("Registered %d slash commands in guild %s", len(registered), b.Config.Discord.GuildID)
		}
		return err
	})
	if err != nil {
		return helpers.NewGatewayError("failed to register slash commands", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (b *Bot) Stop() error {
	return b.Session.Close()
}

// -----------------------------------------------------------------------------

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.Logger.Info("Discord client ready! Logged in as %s", r.User.String())
}

// onInteraction runs on its own goroutine per event.
func (b *Bot) onInteraction(s *discordgo.Session, ev *discordgo.InteractionCreate) {
	b.handler(b.ctx, NewInteraction(s, ev.Interaction, b.style))
}

// -----------------------------------------------------------------------------

// SlashCommands describes /daily, /weekly and /season, each taking a required id.
func SlashCommands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(models.SupportedCommands))
	for _, c := range models.SupportedCommands {
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:        string(c),
			Description: fmt.Sprintf("Show %s progress stats for a player", c),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        models.SubjectOption,
					Description: "Player ID",
					Required:    true,
				},
			},
		})
	}
	return cmds
}
