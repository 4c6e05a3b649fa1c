package discord

import (
	"context"
	"fmt"
	"time"

	"progress-report-bot/src/interfaces"
	"progress-report-bot/src/models"

	"github.com/bwmarrin/discordgo"
)

// responder is the part of *discordgo.Session used to answer interactions.
type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// -----------------------------------------------------------------------------

type EmbedStyle struct {
	Footer string
	Color  int
}

// Interaction adapts one Discord interaction to interfaces.IInteraction.
type Interaction struct {
	session responder
	event   *discordgo.Interaction
	style   EmbedStyle
	now     func() time.Time
}

var _ interfaces.IInteraction = (*Interaction)(nil)

func NewInteraction(session responder, event *discordgo.Interaction, style EmbedStyle) *Interaction {
	return &Interaction{session: session, event: event, style: style, now: time.Now}
}

// -----------------------------------------------------------------------------

func (i *Interaction) IsCommand() bool {
	return i.event.Type == discordgo.InteractionApplicationCommand
}

func (i *Interaction) CommandName() string {
	if !i.IsCommand() {
		return ""
	}
	return i.event.ApplicationCommandData().Name
}

func (i *Interaction) Option(name string) string {
	if !i.IsCommand() {
		return ""
	}
	for _, opt := range i.event.ApplicationCommandData().Options {
		if opt.Name == name && opt.Value != nil {
			return fmt.Sprint(opt.Value)
		}
	}
	return ""
}

func (i *Interaction) ChannelID() string {
	return i.event.ChannelID
}

// -----------------------------------------------------------------------------

func (i *Interaction) Acknowledge(ctx context.Context) error {
	return i.session.InteractionRespond(i.event, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
}

func (i *Interaction) Reply(ctx context.Context, content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return i.session.InteractionRespond(i.event, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
}

func (i *Interaction) EditReply(ctx context.Context, content string) error {
	_, err := i.session.InteractionResponseEdit(i.event, &discordgo.WebhookEdit{
		Content: &content,
	}, discordgo.WithContext(ctx))
	return err
}

func (i *Interaction) EditReplyReport(ctx context.Context, report *models.MReport) error {
	content := ""
	embeds := []*discordgo.MessageEmbed{ToEmbed(report, i.style, i.now())}
	_, err := i.session.InteractionResponseEdit(i.event, &discordgo.WebhookEdit{
		Content: &content,
		Embeds:  &embeds,
	}, discordgo.WithContext(ctx))
	return err
}

// -----------------------------------------------------------------------------

// ToEmbed lays a report out as a Discord embed, one field per section.
func ToEmbed(report *models.MReport, style EmbedStyle, at time.Time) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(report.Sections))
	for _, s := range report.Sections {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   s.Label,
			Value:  s.Value,
			Inline: s.Inline,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:     report.Title,
		Color:     style.Color,
		Fields:    fields,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
	if style.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: style.Footer}
	}
	return embed
}
