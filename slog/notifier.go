// Package slog provides logging decorators for prodsync interfaces
// using the standard library's structured logger.
package slog

import (
	"log/slog"

	"github.com/prodsync/prodsync"
)

// Ensure Notifier implements prodsync.Notifier at compile time.
var _ prodsync.Notifier = (*Notifier)(nil)

// Notifier logs pipeline events and forwards them to the wrapped
// notifier. Pass prodsync.NopNotifier{} as next to only log.
type Notifier struct {
	next   prodsync.Notifier
	logger *slog.Logger
}

// NewNotifier creates a new Notifier.
func NewNotifier(next prodsync.Notifier, logger *slog.Logger) *Notifier {
	return &Notifier{next: next, logger: logger}
}

// Notify logs the event and forwards it.
func (n *Notifier) Notify(event prodsync.Event) {
	switch e := event.(type) {
	case prodsync.StatusEvent:
		n.logger.Info("status", "current", e.Current, "captured", e.Captured)
	case prodsync.LogEvent:
		n.logger.Debug("pipeline", "message", e.Message)
	case prodsync.ResultEvent:
		if e.Err != nil {
			n.logger.Error("run failed", "error", e.Err)
		} else {
			n.logger.Info("run complete")
		}
	}
	n.next.Notify(event)
}
