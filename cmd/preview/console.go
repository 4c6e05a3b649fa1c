package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"progress-report-bot/src/models"
	"progress-report-bot/src/report"
)

// consoleInteraction answers a single command on a writer.
type consoleInteraction struct {
	command   string
	id        string
	channelID string
	footer    string
	out       io.Writer
}

func newConsoleInteraction(command, id, channelID, footer string, out io.Writer) *consoleInteraction {
	return &consoleInteraction{command: command, id: id, channelID: channelID, footer: footer, out: out}
}

func (c *consoleInteraction) IsCommand() bool     { return true }
func (c *consoleInteraction) CommandName() string { return c.command }
func (c *consoleInteraction) ChannelID() string   { return c.channelID }

func (c *consoleInteraction) Option(name string) string {
	if name == models.SubjectOption {
		return c.id
	}
	return ""
}

func (c *consoleInteraction) Acknowledge(ctx context.Context) error {
	return nil
}

func (c *consoleInteraction) Reply(ctx context.Context, content string, ephemeral bool) error {
	_, err := fmt.Fprintln(c.out, content)
	return err
}

func (c *consoleInteraction) EditReply(ctx context.Context, content string) error {
	_, err := fmt.Fprintln(c.out, content)
	return err
}

func (c *consoleInteraction) EditReplyReport(ctx context.Context, rep *models.MReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", rep.Title, strings.Repeat("=", len([]rune(rep.Title))))
	for _, s := range rep.Sections {
		label := strings.TrimSpace(strings.ReplaceAll(s.Label, report.PeriodLabel, ""))
		if label == "" {
			fmt.Fprintf(&b, "%s\n", s.Value)
			continue
		}
		fmt.Fprintf(&b, "%-24s %s\n", label, s.Value)
	}
	if c.footer != "" {
		fmt.Fprintf(&b, "\n-- %s\n", c.footer)
	}
	_, err := io.WriteString(c.out, b.String())
	return err
}
