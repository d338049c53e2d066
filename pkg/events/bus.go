// Package events carries domain events between bounded contexts over
// PostgreSQL using Watermill's SQL transport.
//
// The API process publishes inside the same transaction as its data changes
// (PublishTx). With the outbox enabled those writes land on a single relay
// topic and a forwarder moves them to their real topics after commit. The
// worker process subscribes per topic; all worker instances share one
// consumer group, so each event is handled once.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/config"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
)

const (
	// outboxTopic holds enveloped events until the relay forwards them.
	outboxTopic = "marketplace_outbox"
	relayGroup  = "marketplace-outbox-relay"

	drainTimeout = 30 * time.Second
)

var (
	errNoOutbox     = errors.New("events: bus was created without an outbox")
	errRelayStarted = errors.New("events: outbox relay already running")
)

// EventBus publishes and subscribes to domain events stored in PostgreSQL.
type EventBus struct {
	db     *sql.DB
	pub    message.Publisher
	sub    *watermillsql.Subscriber
	relay  *forwarder.Forwarder
	outbox bool
	retry  RetryPolicy
	log    logger.Logger
	wlog   *watermillLogger

	inflight sync.WaitGroup
}

// NewEventBus returns a bus that publishes straight to each topic. The
// worker uses it: it only subscribes.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return open(cfg, log, false)
}

// NewEventBusWithForwarder returns a bus whose publishes go through the
// outbox topic. Call StartForwarder before serving requests.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return open(cfg, log, true)
}

func open(cfg *config.Config, log logger.Logger, outbox bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	b := &EventBus{
		db:     db,
		outbox: outbox,
		retry:  DefaultRetryPolicy,
		log:    log,
		wlog:   &watermillLogger{log: log},
	}

	pub, err := watermillsql.NewPublisher(db, publisherConfig(true), b.wlog)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	b.pub = b.viaOutbox(pub)

	b.sub, err = b.subscriber(cfg.ServiceName + "-consumer")
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

func publisherConfig(initSchema bool) watermillsql.PublisherConfig {
	return watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}
}

// viaOutbox wraps pub so every message is enveloped for the relay when the
// outbox is enabled.
func (b *EventBus) viaOutbox(pub message.Publisher) message.Publisher {
	if !b.outbox {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: outboxTopic})
}

func (b *EventBus) subscriber(group string) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(b.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, b.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber %s: %w", group, err)
	}
	return sub, nil
}

// StartForwarder runs the outbox relay in the background and returns once
// it is consuming. It may be called once per bus.
func (b *EventBus) StartForwarder(ctx context.Context) error {
	if !b.outbox {
		return errNoOutbox
	}
	if b.relay != nil {
		return errRelayStarted
	}

	relaySub, err := b.subscriber(relayGroup)
	if err != nil {
		return err
	}
	// The relay delivers unwrapped messages, so it needs a plain publisher.
	target, err := watermillsql.NewPublisher(b.db, publisherConfig(true), b.wlog)
	if err != nil {
		_ = relaySub.Close()
		return fmt.Errorf("events: new relay publisher: %w", err)
	}

	relay, err := forwarder.NewForwarder(relaySub, target, b.wlog, forwarder.Config{ForwarderTopic: outboxTopic})
	if err != nil {
		_ = target.Close()
		_ = relaySub.Close()
		return fmt.Errorf("events: new outbox relay: %w", err)
	}
	b.relay = relay

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		b.log.InfoContext(ctx, "events: outbox relay started", "topic", outboxTopic)
		if err := relay.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "events: outbox relay stopped", "error", err)
			return
		}
		b.log.InfoContext(ctx, "events: outbox relay stopped")
	}()

	select {
	case <-relay.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for outbox relay: %w", ctx.Err())
	}
}

// Publish sends msgs to topic outside any transaction.
func (b *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs...)
	if err := b.pub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Ping reports whether the event store is reachable.
func (b *EventBus) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consuming, waits up to 30s for running handlers and the
// relay, then releases the publisher and the connection pool.
func (b *EventBus) Close() error {
	if err := b.sub.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if b.relay != nil {
		if err := b.relay.Close(); err != nil {
			return fmt.Errorf("events: close outbox relay: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(drainTimeout):
		b.log.Error("events: handlers still running after drain timeout", "timeout", drainTimeout)
	}

	if err := b.pub.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return b.db.Close()
}
