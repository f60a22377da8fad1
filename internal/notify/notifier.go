package notify

import "context"

// Notifier announces portal events, currently newly submitted ideas.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}
