package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/logger"
)

// Handler processes one event. Returning an error triggers the bus retry
// policy and, once exhausted, a Nack so the event is redelivered later.
type Handler func(ctx context.Context, msg *message.Message) error

// RetryPolicy bounds in-process retries of a failing handler.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy retries three times: after 1s and 2s.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, BaseDelay: time.Second, MaxDelay: 10 * time.Second}

const errBuffer = 100

// Subscribe consumes topic in the background, calling handler with the
// publisher's trace context restored. Handlers must be idempotent.
//
// Failures that survive the retry policy are Nacked and sent on the returned
// channel (buffered; dropped with a log line when full). The caller drains
// it until it closes on shutdown.
func (b *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	msgs, err := b.sub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		defer close(errCh)

		for msg := range msgs {
			msgCtx := extractTrace(ctx, msg)
			if err := b.retry.run(msgCtx, msg, handler, b.log); err != nil {
				msg.Nack()
				err = fmt.Errorf("%s event %s: %w", topic, msg.Metadata.Get(MetadataEventID), err)
				select {
				case errCh <- err:
				default:
					b.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "topic", topic, "error", err)
				}
				continue
			}
			msg.Ack()
		}
	}()

	return errCh, nil
}

// run calls handler until it succeeds, the attempts are used up or ctx ends.
// The delay doubles after each failure and is capped at MaxDelay.
func (p RetryPolicy) run(ctx context.Context, msg *message.Message, handler Handler, log logger.Logger) error {
	attempts := max(p.Attempts, 1)
	delay := p.BaseDelay

	var err error
	for attempt := 1; ; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == attempts {
			return fmt.Errorf("handler failed after %d attempts: %w", attempts, err)
		}

		log.WarnContext(ctx, "events: handler failed, retrying",
			"event_id", msg.Metadata.Get(MetadataEventID),
			"attempt", attempt,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
