package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"progress-report-bot/src/helpers"
	"progress-report-bot/src/interfaces"
	"progress-report-bot/src/models"
)

// -----------------------------------------------------------------------------
// Reply lifecycle of a single interaction
// -----------------------------------------------------------------------------

type ReplyState int

const (
	StateReceived ReplyState = iota
	StateChannelRejected
	StateBusy
	StateDeferred
	StateReplied
	StateAborted
)

func (s ReplyState) String() string {
	switch s {
	case StateReceived:
		return "received"
	case StateChannelRejected:
		return "channel_rejected"
	case StateBusy:
		return "busy"
	case StateDeferred:
		return "deferred"
	case StateReplied:
		return "replied"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var ErrIllegalTransition = errors.New("illegal reply transition")

// allowed lists legal transitions. A failed platform call always lands in
// StateAborted instead of the requested state.
var allowed = map[ReplyState][]ReplyState{
	StateReceived: {StateChannelRejected, StateBusy, StateDeferred},
	StateDeferred: {StateReplied},
}

// -----------------------------------------------------------------------------

type replyLifecycle struct {
	mu          sync.Mutex
	interaction interfaces.IInteraction
	state       ReplyState
}

func newReplyLifecycle(it interfaces.IInteraction) *replyLifecycle {
	return &replyLifecycle{interaction: it, state: StateReceived}
}

func (r *replyLifecycle) State() ReplyState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// -----------------------------------------------------------------------------

// advance runs call only if from the current state `to` is legal.
func (r *replyLifecycle) advance(to ReplyState, call string, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	legal := false
	for _, s := range allowed[r.state] {
		if s == to {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.state, to)
	}

	if err := fn(); err != nil {
		r.state = StateAborted
		return helpers.NewGatewayError(call+" failed", err)
	}
	r.state = to
	return nil
}

// -----------------------------------------------------------------------------

func (r *replyLifecycle) rejectChannel(ctx context.Context, content string) error {
	return r.advance(StateChannelRejected, "reply", func() error {
		return r.interaction.Reply(ctx, content, true)
	})
}

// busy answers a request turned away by the gate. Before the deferral it is an
// ephemeral reply; after it, the deferred reply is edited.
func (r *replyLifecycle) busy(ctx context.Context, content string) error {
	if r.State() == StateDeferred {
		return r.edit(ctx, content)
	}
	return r.advance(StateBusy, "reply", func() error {
		return r.interaction.Reply(ctx, content, true)
	})
}

func (r *replyLifecycle) acknowledge(ctx context.Context) error {
	return r.advance(StateDeferred, "acknowledge", func() error {
		return r.interaction.Acknowledge(ctx)
	})
}

func (r *replyLifecycle) edit(ctx context.Context, content string) error {
	return r.advance(StateReplied, "editReply", func() error {
		return r.interaction.EditReply(ctx, content)
	})
}

func (r *replyLifecycle) editReport(ctx context.Context, report *models.MReport) error {
	return r.advance(StateReplied, "editReply", func() error {
		return r.interaction.EditReplyReport(ctx, report)
	})
}
