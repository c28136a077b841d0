package app

import (
	"fmt"

	"github.com/Egor213/CallTrack/internal/broker"
	kafkabroker "github.com/Egor213/CallTrack/internal/broker/kafka"
	natsbroker "github.com/Egor213/CallTrack/internal/broker/nats"
	"github.com/Egor213/CallTrack/internal/config"
)

// newProducer returns nil when publication is disabled.
func newProducer(cfg config.Broker) (broker.Producer, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case broker.DriverKafka:
		if len(cfg.Brokers) == 0 {
			return nil, fmt.Errorf("kafka driver selected without brokers")
		}
		return kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Brokers,
			Topic:   cfg.Topic,
		}), nil
	case broker.DriverNats:
		publisher, err := natsbroker.NewPublisher(natsbroker.PublisherConfig{
			URL:     cfg.NatsURL,
			Subject: cfg.Subject,
		})
		if err != nil {
			return nil, err
		}
		return publisher, nil
	default:
		return nil, fmt.Errorf("unknown broker driver %q", cfg.Driver)
	}
}
