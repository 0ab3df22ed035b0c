package mdclip

import "context"

// Saver writes artifacts to disk.
type Saver interface {
	// Save asks the user where to store data, proposing suggestedName,
	// and returns the path written. It never overwrites an existing file
	// without confirmation. Returns EINVALID if the user cancels.
	Save(ctx context.Context, data []byte, suggestedName string) (string, error)
}

// Prompter is the save dialog presented by a Saver.
type Prompter interface {
	// PromptPath lets the user edit the proposed path.
	// ok is false if the user cancelled.
	PromptPath(ctx context.Context, proposed string) (path string, ok bool, err error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, question string) (bool, error)
}

// Notifier informs the user of background completion. Delivery is
// best-effort; implementations must not block.
type Notifier interface {
	Notify(title, message string)
}
