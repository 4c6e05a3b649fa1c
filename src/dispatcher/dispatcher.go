package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"progress-report-bot/src/analysis"
	"progress-report-bot/src/helpers"
	"progress-report-bot/src/interfaces"
	"progress-report-bot/src/logger"
	"progress-report-bot/src/models"
	"progress-report-bot/src/observability"
	"progress-report-bot/src/report"
)

type Dispatcher struct {
	ChannelID    string
	FetchTimeout time.Duration
	Source       interfaces.IStatsSource
	Deriver      *analysis.MetricDeriver
	Gate         *ProcessingGate
	Metrics      *observability.Metrics
	Logger       *logger.Logger
}

// -----------------------------------------------------------------------------

func NewDispatcher(
	cfg *models.MConfig,
	source interfaces.IStatsSource,
	deriver *analysis.MetricDeriver,
	gate *ProcessingGate,
	metrics *observability.Metrics,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		ChannelID:    cfg.Discord.ChannelID,
		FetchTimeout: time.Duration(cfg.StatsAPI.TimeoutSeconds) * time.Second,
		Source:       source,
		Deriver:      deriver,
		Gate:         gate,
		Metrics:      metrics,
		Logger:       log,
	}
}

// -----------------------------------------------------------------------------

// Handle answers one interaction and returns the state its reply ended in.
// Every accepted request ends with exactly one final message.
func (d *Dispatcher) Handle(ctx context.Context, it interfaces.IInteraction) ReplyState {
	if !it.IsCommand() {
		return StateReceived
	}

	name := strings.ToLower(strings.TrimSpace(it.CommandName()))
	lc := newReplyLifecycle(it)

	// Replies go out even if the bot is shutting down mid-request.
	replyCtx := context.WithoutCancel(ctx)

	if it.ChannelID() != d.ChannelID {
		d.Logger.Info("Rejected /%s from channel %s", name, it.ChannelID())
		d.reply(name, "reply", lc.rejectChannel(replyCtx, MsgWrongChannel))
		d.count(name, observability.OutcomeChannelRejected)
		return lc.State()
	}

	if d.Gate.Busy() {
		d.Logger.Info("Busy, turning away /%s", name)
		d.reply(name, "reply", lc.busy(replyCtx, MsgBusy))
		d.count(name, observability.OutcomeBusy)
		return lc.State()
	}

	if err := lc.acknowledge(replyCtx); err != nil {
		d.Logger.Error("Failed to defer reply for /%s: %v", name, err)
		d.failure("acknowledge")
		d.count(name, observability.OutcomeAckFailed)
		return lc.State()
	}
	d.Logger.Debug("Deferred reply for command /%s", name)

	cmd, ok := models.ParseCommand(name)
	if !ok {
		d.reply(name, "editReply", lc.edit(replyCtx, MsgUnknownCommand))
		d.count(name, observability.OutcomeUnknownCommand)
		return lc.State()
	}

	subjectID := strings.TrimSpace(it.Option(models.SubjectOption))
	if subjectID == "" {
		d.reply(name, "editReply", lc.edit(replyCtx, MsgMissingID))
		d.count(name, observability.OutcomeMissingID)
		return lc.State()
	}

	// Another request may have taken the gate while we were acknowledging.
	if !d.Gate.TryEnter() {
		d.reply(name, "editReply", lc.busy(replyCtx, MsgBusy))
		d.count(name, observability.OutcomeBusy)
		return lc.State()
	}

	req := models.MCommandRequest{Command: cmd, SubjectID: subjectID, ChannelID: it.ChannelID()}
	outcome := d.run(ctx, replyCtx, lc, req)
	d.count(name, outcome)
	return lc.State()
}

// -----------------------------------------------------------------------------

// run executes the pipeline while holding the gate. The gate is released on
// every exit path, panics included.
func (d *Dispatcher) run(ctx, replyCtx context.Context, lc *replyLifecycle, req models.MCommandRequest) (outcome string) {
	d.Metrics.GateBusy.Set(1)
	defer func() {
		d.Gate.Leave()
		d.Metrics.GateBusy.Set(0)
	}()

	defer func() {
		if r := recover(); r != nil {
			d.Logger.Error("Panic processing /%s: %v", req.Command, r)
			d.reply(string(req.Command), "editReply", lc.edit(replyCtx, MsgGenericFailure))
			outcome = observability.OutcomeError
		}
	}()

	d.Logger.Info("Processing command /%s with ID: %s", req.Command, req.SubjectID)

	rep, err := d.process(ctx, req)
	if err != nil {
		msg, kind := classify(err)
		d.Logger.Error("Command /%s failed: %v", req.Command, err)
		d.reply(string(req.Command), "editReply", lc.edit(replyCtx, msg))
		return kind
	}

	d.reply(string(req.Command), "editReply", lc.editReport(replyCtx, rep))
	d.Logger.Info("Reply sent for /%s (%s)", req.Command, req.SubjectID)
	return observability.OutcomeSuccess
}

// -----------------------------------------------------------------------------

// process is fetch -> derive -> render.
func (d *Dispatcher) process(ctx context.Context, req models.MCommandRequest) (*models.MReport, error) {
	fetchCtx := ctx
	if d.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, d.FetchTimeout)
		defer cancel()
	}

	start := time.Now()
	row, err := d.Source.Fetch(fetchCtx, models.MStatsQuery{Type: string(req.Command), ID: req.SubjectID})
	d.Metrics.FetchDuration.WithLabelValues(string(req.Command)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	record, err := d.Deriver.Derive(row, req.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("derive metrics: %w", err)
	}

	rep := report.Render(req.Command, record)
	d.Metrics.ReportsBuilt.Inc()
	return rep, nil
}

// -----------------------------------------------------------------------------

// classify maps a pipeline error to the user message and metrics outcome.
func classify(err error) (string, string) {
	if status, ok := helpers.StatusOf(err); ok {
		return msgFetchFailed(status), observability.OutcomeFetchError
	}
	if helpers.IsInvalidData(err) {
		return MsgNoData, observability.OutcomeNoData
	}
	return MsgGenericFailure, observability.OutcomeError
}

// -----------------------------------------------------------------------------

func (d *Dispatcher) reply(command, call string, err error) {
	if err == nil {
		return
	}
	d.Logger.Error("Failed to answer /%s (%s): %v", command, call, err)
	d.failure(call)
}

func (d *Dispatcher) failure(call string) {
	d.Metrics.ReplyFailures.WithLabelValues(call).Inc()
}

func (d *Dispatcher) count(command, outcome string) {
	if _, ok := models.ParseCommand(command); !ok {
		command = "other"
	}
	d.Metrics.CommandsTotal.WithLabelValues(command, outcome).Inc()
}
