package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

// fakeReader реализует ReaderInterface и отдаёт заранее подготовленные сообщения и ошибки.
type fakeReader struct {
	messages []kafka.Message
	errors   []error
	idx      int
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if f.idx < len(f.messages) {
		msg := f.messages[f.idx]
		f.idx++
		return msg, nil
	}
	errIdx := f.idx - len(f.messages)
	if errIdx < len(f.errors) {
		err := f.errors[errIdx]
		f.idx++
		return kafka.Message{}, err
	}
	return kafka.Message{}, context.Canceled
}

func (f *fakeReader) Close() error {
	return nil
}

func TestConsumer_Consume_ValidEvent(t *testing.T) {
	evt := Event{
		ClientID:  "test-client",
		Type:      EventTypeAddToCart,
		ProductID: "p1",
		Category:  "electronics",
		Timestamp: time.Now().UTC(),
	}
	payload, _ := json.Marshal(evt)
	msg := kafka.Message{Value: payload}

	fr := &fakeReader{
		messages: []kafka.Message{msg},
		errors:   []error{context.Canceled},
	}

	logger := zapTestLogger(t)
	consumer := &Consumer{
		Reader: fr,
		Logger: logger,
	}

	var called bool
	var received Event

	handler := func(ctx context.Context, e Event) error {
		called = true
		received = e
		return nil
	}

	consumer.Consume(context.Background(), handler)

	if !called {
		t.Fatal("ожидали, что handler будет вызван для валидного события")
	}
	if received.ClientID != evt.ClientID {
		t.Errorf("ожидали ClientID=%q, получили=%q", evt.ClientID, received.ClientID)
	}
	if received.Type != evt.Type {
		t.Errorf("ожидали Type=%q, получили=%q", evt.Type, received.Type)
	}
	if received.ProductID != evt.ProductID {
		t.Errorf("ожидали ProductID=%q, получили=%q", evt.ProductID, received.ProductID)
	}
}

func TestConsumer_Consume_InvalidJSON(t *testing.T) {
	badMsg := kafka.Message{Value: []byte(`{"client_id": 123, bad json`)}
	fr := &fakeReader{
		messages: []kafka.Message{badMsg},
		errors:   []error{context.Canceled},
	}

	logger := zapTestLogger(t)
	consumer := &Consumer{
		Reader: fr,
		Logger: logger,
	}

	called := false
	handler := func(ctx context.Context, e Event) error {
		called = true
		return nil
	}

	consumer.Consume(context.Background(), handler)

	if called {
		t.Error("ожидали, что handler НЕ будет вызван при некорректном JSON")
	}
}

func TestConsumer_Consume_HandlerError(t *testing.T) {
	evt := Event{
		ClientID:  "client-err",
		Type:      EventTypeCheckout,
		Timestamp: time.Now().UTC(),
	}
	payload, _ := json.Marshal(evt)
	msg := kafka.Message{Value: payload}

	fr := &fakeReader{
		messages: []kafka.Message{msg},
		errors:   []error{context.Canceled},
	}

	logger := zapTestLogger(t)
	consumer := &Consumer{
		Reader: fr,
		Logger: logger,
	}

	var called bool
	handler := func(ctx context.Context, e Event) error {
		called = true
		return errors.New("simulated handler failure")
	}

	consumer.Consume(context.Background(), handler)

	if !called {
		t.Error("ожидали, что handler всё же будет вызван, даже если он вернул ошибку")
	}
}
