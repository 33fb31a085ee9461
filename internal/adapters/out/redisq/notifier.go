package redisq

import (
	"context"
	"encoding/json"

	"jobmatch/internal/core/ports"

	r "github.com/redis/go-redis/v9"
)

// Message is the JSON published for every notification. Push delivery services
// subscribe to the channel and fan out to devices.
type Message struct {
	TargetUserIDs []string          `json:"targetUserIds"`
	Type          string            `json:"type"`
	Title         string            `json:"title"`
	Message       string            `json:"message"`
	Payload       map[string]string `json:"payload,omitempty"`
}

// Notifier implements ports.Notifier with Redis PUBLISH.
type Notifier struct {
	rdb     *r.Client
	channel string
}

// NewNotifier creates a notifier publishing on channel.
func NewNotifier(rdb *r.Client, channel string) *Notifier {
	return &Notifier{rdb: rdb, channel: channel}
}

// Notify publishes n. Having no subscriber is not an error.
func (n *Notifier) Notify(ctx context.Context, notification ports.Notification) error {
	targets := make([]string, 0, len(notification.TargetUserIDs))
	for _, id := range notification.TargetUserIDs {
		targets = append(targets, id.String())
	}
	raw, err := json.Marshal(Message{
		TargetUserIDs: targets,
		Type:          string(notification.Type),
		Title:         notification.Title,
		Message:       notification.Message,
		Payload:       notification.Payload,
	})
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, n.channel, raw).Err()
}
