package broker

import "context"

const (
	DriverKafka = "kafka"
	DriverNats  = "nats"
)

// Producer publishes stored call records to downstream consumers. The key
// groups messages of one service.
type Producer interface {
	SendMessage(ctx context.Context, key, value []byte) error
	Close() error
}
