package feed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/agendei/agenda-service/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

const channelPrefix = "agenda:changed:"

// Feed is the establishment change feed over Redis pub/sub. Notifications
// are coarse: "something changed for establishment X", no payload to trust.
// Subscribers always re-fetch the current window, so the feed delivering a
// notification more than once is harmless.
type Feed struct {
	rdb     *redis.Client
	log     Logger
	metrics *metrics.Metrics
}

// New создает новый экземпляр фида изменений
func New(rdb *redis.Client, log Logger, m *metrics.Metrics) *Feed {
	return &Feed{rdb: rdb, log: log, metrics: m}
}

// channelFor возвращает имя канала для заведения
func channelFor(establishmentID uuid.UUID) string {
	return channelPrefix + establishmentID.String()
}

// NotifyChanged publishes a change notification for the establishment.
// Publish failures are logged, not propagated: the write that triggered the
// notification has already committed, and the store stays authoritative.
func (f *Feed) NotifyChanged(ctx context.Context, establishmentID uuid.UUID) {
	if err := f.rdb.Publish(ctx, channelFor(establishmentID), "changed").Err(); err != nil {
		f.log.Error("feed: publish for establishment=%s failed: %v", establishmentID, err)
	}
}

// Subscription is a cancellable handle on one establishment's change feed.
// Close releases the underlying pub/sub connection deterministically; it is
// safe to call on every exit path.
type Subscription struct {
	pubsub *redis.PubSub
	events chan struct{}
	cancel context.CancelFunc
}

// Events delivers one value per change notification. The channel is closed
// after Close (or when the feed connection is lost).
func (s *Subscription) Events() <-chan struct{} {
	return s.events
}

// Close tears the subscription down. Idempotent.
func (s *Subscription) Close() error {
	s.cancel()
	return s.pubsub.Close()
}

// Subscribe opens a change subscription for the establishment. The returned
// handle must be closed when the view unmounts.
func (f *Feed) Subscribe(ctx context.Context, establishmentID uuid.UUID) (*Subscription, error) {
	pubsub := f.rdb.Subscribe(ctx, channelFor(establishmentID))

	// Force the SUBSCRIBE round-trip so a bad connection fails here, not
	// silently in the receive loop.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("feed: subscribe establishment=%s: %w", establishmentID, err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan struct{}, 1),
		cancel: cancel,
	}

	go func() {
		defer close(sub.events)
		ch := pubsub.Channel()
		for {
			select {
			case <-loopCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				f.metrics.ObserveFeedEvent(establishmentID.String())
				// Coalesce: one pending event is enough, the handler
				// re-fetches the whole window anyway.
				select {
				case sub.events <- struct{}{}:
				default:
				}
			}
		}
	}()

	f.log.Info("feed: subscribed to establishment=%s", establishmentID)
	return sub, nil
}
