package interfaces

import (
	"context"

	"progress-report-bot/src/models"
)

// -----------------------------------------------------------------------------
// IInteraction is one slash-command event plus the calls the platform accepts
// for answering it. Every call may fail independently.
// -----------------------------------------------------------------------------

type IInteraction interface {

	// IsCommand is false for interactions that are not slash-command invocations.
	IsCommand() bool

	// CommandName is the invoked command as typed by the user.
	CommandName() string

	// Option returns a string option value, or "" when absent.
	Option(name string) string

	// ChannelID is the channel the command was invoked from.
	ChannelID() string

	// -----------------------------------------------------------------------------

	// Acknowledge sends a deferred acknowledgment.
	Acknowledge(ctx context.Context) error

	// Reply sends the initial response directly.
	Reply(ctx context.Context, content string, ephemeral bool) error

	// EditReply replaces the deferred response with text.
	EditReply(ctx context.Context, content string) error

	// EditReplyReport replaces the deferred response with a rendered report.
	EditReplyReport(ctx context.Context, report *models.MReport) error
}
