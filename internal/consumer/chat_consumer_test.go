package consumer

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/sportmeet/sportmeet/internal/chat"
	"github.com/sportmeet/sportmeet/internal/flow"
	"github.com/sportmeet/sportmeet/internal/models"
	"github.com/sportmeet/sportmeet/internal/service"
	"github.com/sportmeet/sportmeet/internal/session"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

type nullDispatcher struct{}

func (nullDispatcher) Send(ctx context.Context, chatID int64, text string) error { return nil }

type nullProfileService struct {
	err error
}

func (s *nullProfileService) GetOrCreate(ctx context.Context, telegramID int64, username, firstName string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: 1, TelegramID: telegramID, FirstName: firstName}, nil
}

func (s *nullProfileService) FindByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	return nil, service.ErrUserNotFound
}

func (s *nullProfileService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, service.ErrUserNotFound
}

func (s *nullProfileService) Update(ctx context.Context, userID uint, update service.ProfileUpdate) (*models.User, error) {
	return nil, service.ErrUserNotFound
}

func (s *nullProfileService) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	return nil, nil
}

func consumerFixture(profileErr error) *ChatConsumer {
	engine := flow.NewEngine(session.NewMemoryStore())
	router := chat.NewRouter(engine, &nullProfileService{err: profileErr}, nil, nil, nullDispatcher{})
	return NewChatConsumer(router)
}

func TestHandleMessageAcksProcessedUpdate(t *testing.T) {
	c := consumerFixture(nil)
	ack := &fakeAcknowledger{}

	c.handleMessage(amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"chat_id":100,"user_id":42,"text":"hello"}`),
	})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandleMessageDropsMalformedPayload(t *testing.T) {
	c := consumerFixture(nil)
	ack := &fakeAcknowledger{}

	c.handleMessage(amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`not json`),
	})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue, "a malformed payload will never parse, do not requeue")
}

func TestHandleMessageRequeuesOnProcessingFailure(t *testing.T) {
	c := consumerFixture(assert.AnError)
	ack := &fakeAcknowledger{}

	c.handleMessage(amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"chat_id":100,"user_id":42,"text":"hello"}`),
	})

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue, "a transient failure is retried")
}
