package itinerary

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-itinerary/internal/app/models"
)

// Notifier receives user-facing status messages. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, kind models.NotificationKind, message string)
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, kind models.NotificationKind, message string) {
	n.logger.Info("Notification", zap.String("kind", string(kind)), zap.String("message", message))
}

// RecordingNotifier keeps notifications so they can be returned with the
// HTTP response.
type RecordingNotifier struct {
	mu    sync.Mutex
	items []models.Notification
}

func (n *RecordingNotifier) Notify(_ context.Context, kind models.NotificationKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, models.Notification{Kind: kind, Message: message})
}

// Notifications returns a copy of everything recorded so far.
func (n *RecordingNotifier) Notifications() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Notifiers fans a notification out to several sinks.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, kind models.NotificationKind, message string) {
	for _, n := range ns {
		if n != nil {
			n.Notify(ctx, kind, message)
		}
	}
}
