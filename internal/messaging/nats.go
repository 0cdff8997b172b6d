package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/echelon-room/marketplace/internal/domain"
	"github.com/echelon-room/marketplace/internal/logger"
)

const (
	publishWorkers   = 4
	publishQueueSize = 256
	maxPublishTries  = 3
)

// Config holds the configuration for the NATS feed broadcaster
type Config struct {
	URL            string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

// natsConn is the slice of *nats.Conn the broadcaster uses, split out for tests
type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
	Close()
}

type natsBroadcaster struct {
	nc            natsConn
	subjectPrefix string
	pool          pond.Pool
}

// NewNATSBroadcaster connects to NATS and returns a feed broadcaster
func NewNATSBroadcaster(cfg Config) (Broadcaster, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return newNATSBroadcaster(nc, cfg.SubjectPrefix), nil
}

func newNATSBroadcaster(nc natsConn, subjectPrefix string) *natsBroadcaster {
	return &natsBroadcaster{
		nc:            nc,
		subjectPrefix: subjectPrefix,
		pool:          pond.NewPool(publishWorkers, pond.WithQueueSize(publishQueueSize)),
	}
}

// Broadcast serializes the event and hands it to the publish pool. Failures
// are retried with backoff and then logged; they never reach the caller.
func (b *natsBroadcaster) Broadcast(_ context.Context, event *domain.FeedEvent) error {
	if event.EventID == "" {
		event.EventID = ulid.Make().String()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal feed event: %w", err)
	}

	subject := b.subject(event.EventCode)
	b.pool.Submit(func() {
		operation := func() error {
			return b.nc.Publish(subject, data)
		}
		err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxPublishTries))
		if err != nil {
			logger.Error(err,
				zap.String("message", "failed to publish feed event"),
				zap.String("subject", subject),
				zap.String("event_id", event.EventID),
			)
		}
	})

	return nil
}

// subject maps an event code onto the broker subject, e.g.
// marketplace.feed.sale for a SALE event
func (b *natsBroadcaster) subject(code domain.FeedEventCode) string {
	return fmt.Sprintf("%s.%s", b.subjectPrefix, strings.ToLower(string(code)))
}

// Close drains pending publishes before closing the connection
func (b *natsBroadcaster) Close() {
	b.pool.StopAndWait()

	if b.nc == nil {
		return
	}
	if err := b.nc.Drain(); err != nil {
		logger.Error(err, zap.String("message", "failed to drain NATS connection"))
	}
	b.nc.Close()
}
