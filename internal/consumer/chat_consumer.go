package consumer

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sportmeet/sportmeet/internal/chat"
)

// ChatConsumer feeds incoming chat updates from the gateway queue into
// the router.
type ChatConsumer struct {
	router *chat.Router
}

func NewChatConsumer(router *chat.Router) *ChatConsumer {
	return &ChatConsumer{router: router}
}

func (c *ChatConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			c.handleMessage(msg)
		}
		log.Println("[ChatConsumer] channel closed, stopping consumer")
	}()
}

func (c *ChatConsumer) handleMessage(msg amqp.Delivery) {
	var update chat.Update
	if err := json.Unmarshal(msg.Body, &update); err != nil {
		log.Printf("[ChatConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := c.router.HandleUpdate(context.Background(), update); err != nil {
		log.Printf("[ChatConsumer] failed to handle update from %d: %v", update.UserID, err)
		msg.Nack(false, true) // requeue
		return
	}

	msg.Ack(false)
}
