package natsbroker

import (
	"context"
	"strings"

	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

type PublisherConfig struct {
	URL     string
	Subject string
}

type Publisher struct {
	conn    *nats.Conn
	subject string
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name("calltrack"))
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return &Publisher{
		conn:    conn,
		subject: cfg.Subject,
	}, nil
}

// SendMessage publishes value on "<subject>.<key>" so consumers can
// subscribe per service with wildcards.
func (p *Publisher) SendMessage(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := Subject(p.subject, string(key))

	if err := p.conn.Publish(subject, value); err != nil {
		log.Errorf("Failed to publish message to %s: %v", subject, err)
		return err
	}
	log.Debugf("Message published: subject=%s", subject)
	return nil
}

func (p *Publisher) Close() error {
	log.Info("Draining NATS connection...")
	return p.conn.Drain()
}

// Subject appends key as the last subject token. Characters that NATS
// treats as separators or wildcards are replaced.
func Subject(base, key string) string {
	if key == "" {
		return base
	}
	token := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\n', '\r':
			return '_'
		}
		return r
	}, key)
	return base + "." + token
}
