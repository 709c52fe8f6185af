// Package console implements command submission: history recording, the
// dangerous-command and server-requested confirmations, and reporting the
// server's reply.
package console

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Rorical/gameconsole/internal/commands"
	"github.com/Rorical/gameconsole/internal/history"
	"github.com/Rorical/gameconsole/internal/utils"
)

const (
	msgSuccess         = "Command executed successfully"
	msgFailed          = "Command failed"
	msgTransport       = "Failed to execute command"
	msgConfirmFallback = "This command requires confirmation. Continue?"
)

// Console owns the command history and runs the execution flow against an
// Executor.
type Console struct {
	history   *history.History
	executor  Executor
	confirmer Confirmer
	sink      Sink
	now       func() time.Time
}

// New wires a Console. The history is used as-is; load it before the first
// call if it is persisted.
func New(h *history.History, executor Executor, confirmer Confirmer, sink Sink) *Console {
	return &Console{
		history:   h,
		executor:  executor,
		confirmer: confirmer,
		sink:      sink,
		now:       time.Now,
	}
}

func (c *Console) History() *history.History {
	return c.history
}

// Execute submits input. The trimmed command is recorded in history before
// anything else happens; dangerous commands and server requests for
// confirmation both go through the Confirmer.
func (c *Console) Execute(ctx context.Context, input string) Outcome {
	command := strings.TrimSpace(input)
	if command == "" {
		return Skipped
	}

	c.history.Add(command)
	return c.run(ctx, command, false)
}

// run sends command. confirmed marks a retry after the server asked for
// confirmation: both gates are skipped and history is left alone.
func (c *Console) run(ctx context.Context, command string, confirmed bool) Outcome {
	if !confirmed && commands.IsDangerous(command) {
		prompt := fmt.Sprintf("Are you sure you want to execute: %s?", command)
		if !c.confirmer.Confirm(ctx, prompt) {
			return Declined
		}
	}

	resp, err := c.executor.ExecuteCommand(ctx, command)
	if err != nil {
		log.Printf("Command execution error: %v", err)
		c.notify(LevelError, msgTransport)
		return TransportError
	}

	if resp.RequiresConfirmation && !confirmed {
		prompt := resp.Message
		if prompt == "" {
			prompt = msgConfirmFallback
		}
		if !c.confirmer.Confirm(ctx, utils.Sanitize(prompt)) {
			return Declined
		}
		return c.run(ctx, command, true)
	}

	if !resp.Success {
		text := resp.Error
		if text == "" {
			text = msgFailed
		}
		c.notify(LevelError, utils.Sanitize(text))
		return Failed
	}

	c.notify(LevelSuccess, msgSuccess)
	if resp.Response != "" {
		c.sink.Log(LogEntry{
			Time:     c.now(),
			Command:  command,
			Response: utils.Sanitize(resp.Response),
		})
	}
	return Succeeded
}

func (c *Console) notify(level Level, text string) {
	c.sink.Notify(Notification{Level: level, Text: text, Time: c.now()})
}
