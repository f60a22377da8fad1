package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes announcements to the service log. It is used when no
// email delivery is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger,
	}
}

func (n *LogNotifier) Publish(ctx context.Context, message string) error {
	n.logger.Info("announcement published", zap.String("message", message))
	return nil
}
