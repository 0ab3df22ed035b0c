package mock

import (
	"context"

	"github.com/fwojciec/mdclip"
)

var _ mdclip.Saver = (*Saver)(nil)

// Saver is a mock implementation of mdclip.Saver.
type Saver struct {
	SaveFn func(ctx context.Context, data []byte, suggestedName string) (string, error)
}

func (s *Saver) Save(ctx context.Context, data []byte, suggestedName string) (string, error) {
	return s.SaveFn(ctx, data, suggestedName)
}

var _ mdclip.Prompter = (*Prompter)(nil)

// Prompter is a mock implementation of mdclip.Prompter.
type Prompter struct {
	PromptPathFn func(ctx context.Context, proposed string) (string, bool, error)
	ConfirmFn    func(ctx context.Context, question string) (bool, error)
}

func (p *Prompter) PromptPath(ctx context.Context, proposed string) (string, bool, error) {
	return p.PromptPathFn(ctx, proposed)
}

func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	return p.ConfirmFn(ctx, question)
}

var _ mdclip.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of mdclip.Notifier.
type Notifier struct {
	NotifyFn func(title, message string)
}

func (n *Notifier) Notify(title, message string) {
	n.NotifyFn(title, message)
}
