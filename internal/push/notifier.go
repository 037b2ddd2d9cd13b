package push

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier is the headless display path: notifications land in the
// log instead of a system tray.
type LogNotifier struct {
	Log *zap.Logger
}

func (n *LogNotifier) Show(ctx context.Context, notif Notification) error {
	n.Log.Info("notification",
		zap.String("title", notif.Title),
		zap.String("body", notif.Body),
		zap.String("url", notif.URL),
	)
	return nil
}
