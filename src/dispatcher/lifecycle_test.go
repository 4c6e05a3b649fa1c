package dispatcher

import (
	"context"
	"errors"
	"testing"

	"progress-report-bot/src/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_EditBeforeDeferIsRejected(t *testing.T) {
	it := newInteraction("daily", "1")
	lc := newReplyLifecycle(it)

	err := lc.edit(context.Background(), "too early")

	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Empty(t, it.calls, "illegal transitions never reach the platform")
	assert.Equal(t, StateReceived, lc.State())
}

func TestLifecycle_DeferThenEdit(t *testing.T) {
	it := newInteraction("daily", "1")
	lc := newReplyLifecycle(it)

	require.NoError(t, lc.acknowledge(context.Background()))
	assert.Equal(t, StateDeferred, lc.State())

	require.NoError(t, lc.edit(context.Background(), "done"))
	assert.Equal(t, StateReplied, lc.State())

	assert.ErrorIs(t, lc.edit(context.Background(), "again"), ErrIllegalTransition)
	assert.Equal(t, []string{"done"}, it.edits)
}

func TestLifecycle_TerminalRejections(t *testing.T) {
	it := newInteraction("daily", "1")
	lc := newReplyLifecycle(it)

	require.NoError(t, lc.rejectChannel(context.Background(), MsgWrongChannel))
	assert.Equal(t, StateChannelRejected, lc.State())

	assert.ErrorIs(t, lc.acknowledge(context.Background()), ErrIllegalTransition)
	assert.ErrorIs(t, lc.busy(context.Background(), MsgBusy), ErrIllegalTransition)
}

func TestLifecycle_BusyAfterDeferEdits(t *testing.T) {
	it := newInteraction("daily", "1")
	lc := newReplyLifecycle(it)

	require.NoError(t, lc.acknowledge(context.Background()))
	require.NoError(t, lc.busy(context.Background(), MsgBusy))

	assert.Equal(t, StateReplied, lc.State())
	assert.Equal(t, []string{MsgBusy}, it.edits)
	assert.Empty(t, it.replies)
}

func TestLifecycle_FailedCallAborts(t *testing.T) {
	it := newInteraction("daily", "1")
	it.ackErr = errors.New("interaction expired")
	lc := newReplyLifecycle(it)

	err := lc.acknowledge(context.Background())

	var ge *helpers.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StateAborted, lc.State())
	assert.ErrorIs(t, lc.edit(context.Background(), "late"), ErrIllegalTransition)
}

func TestReplyState_String(t *testing.T) {
	assert.Equal(t, "deferred", StateDeferred.String())
	assert.Equal(t, "state(42)", ReplyState(42).String())
}

func TestProcessingGate(t *testing.T) {
	g := NewProcessingGate()
	assert.False(t, g.Busy())

	assert.True(t, g.TryEnter())
	assert.True(t, g.Busy())
	assert.False(t, g.TryEnter())

	g.Leave()
	assert.False(t, g.Busy())
	assert.True(t, g.TryEnter())
}
