package slog

import (
	"log/slog"

	"github.com/fwojciec/mdclip"
)

// Ensure Notifier implements mdclip.Notifier.
var _ mdclip.Notifier = (*Notifier)(nil)

// Notifier delivers notifications as log records.
type Notifier struct {
	logger *slog.Logger
}

// NewNotifier creates a new Notifier.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Notify logs title and message.
func (n *Notifier) Notify(title, message string) {
	n.logger.Info(title, "message", message)
}
