package notify

import (
	"context"
	"time"

	"github.com/sportmeet/sportmeet/pkg/rabbitmq"
)

// AMQPDispatcher publishes outbound messages to the notifications
// exchange, where the chat gateway picks them up for delivery.
type AMQPDispatcher struct {
	publisher *rabbitmq.Publisher
	timeout   time.Duration
}

type outboundMessage struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

func NewAMQPDispatcher(publisher *rabbitmq.Publisher, timeout time.Duration) *AMQPDispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AMQPDispatcher{publisher: publisher, timeout: timeout}
}

func (d *AMQPDispatcher) Send(ctx context.Context, chatID int64, text string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.publisher.Publish(ctx, "notification.send", outboundMessage{
		ChatID: chatID,
		Text:   text,
	})
}
