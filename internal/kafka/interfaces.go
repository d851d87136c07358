package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// ReaderInterface - то, что Consumer использует от *kafka.Reader
type ReaderInterface interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// WriterInterface - то, что Producer использует от *kafka.Writer
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// EventProducer публикует подтвержденные мутации консоли
type EventProducer interface {
	SendEvent(ctx context.Context, event Event) error
	Close() error
}

type EventConsumer interface {
	Consume(ctx context.Context, handler func(context.Context, Event) error)
	Close() error
}
