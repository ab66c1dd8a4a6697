package agenda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/metrics"
	"github.com/agendei/agenda-service/pkg/ptr"
)

// Controller владеет одним открытым окном расписания заведения
//
// It subscribes to the change feed, re-fetches the active window whenever a
// change lands, and guards against out-of-order responses with a generation
// counter: only the most recently started refresh may publish its result.
type Controller struct {
	repo    AppointmentRepository
	feed    ChangeFeed
	logger  Logger
	metrics *metrics.Metrics

	mu           sync.Mutex
	open         bool
	est          uuid.UUID
	window       Window
	gen          uint64
	appointments []*domain.Appointment

	sub    Subscription
	cancel context.CancelFunc
	done   chan struct{}
}

func NewController(repo AppointmentRepository, feed ChangeFeed, logger Logger, m *metrics.Metrics) *Controller {
	return &Controller{repo: repo, feed: feed, logger: logger, metrics: m}
}

// Open starts the controller on the given establishment and window: it
// subscribes to the change feed, performs the initial fetch and launches the
// event loop. Calling Open on an already open controller is an error.
func (c *Controller) Open(ctx context.Context, establishmentID uuid.UUID, window Window) error {
	c.mu.Lock()
	if c.open {
		c.mu.Unlock()
		return fmt.Errorf("%w: controller already open", ErrInternal)
	}
	if !window.Mode.Valid() {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInvalidView, window.Mode)
	}
	c.open = true
	c.est = establishmentID
	c.window = window
	c.appointments = nil
	c.mu.Unlock()

	sub, err := c.feed.Subscribe(ctx, establishmentID)
	if err != nil {
		// Still usable: manual Refresh works, live updates do not.
		c.logger.Warn("Open: change feed unavailable for establishment=%s: %v", establishmentID, err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.sub = sub
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	if sub != nil {
		go c.loop(loopCtx, sub, done)
	} else {
		close(done)
	}

	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("Open: initial refresh for establishment=%s: %v", establishmentID, err)
	}
	return nil
}

// Close tears the controller down: the feed subscription is closed, the
// event loop drained, and the cached window dropped. Safe to call twice.
func (c *Controller) Close() error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return nil
	}
	c.open = false
	sub := c.sub
	cancel := c.cancel
	done := c.done
	c.sub = nil
	c.cancel = nil
	c.done = nil
	c.gen++ // in-flight refreshes land on the floor
	c.appointments = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var err error
	if sub != nil {
		err = sub.Close()
	}
	if done != nil {
		<-done
	}
	return err
}

// SetWindow switches the active window and refreshes it. The old window's
// in-flight fetches are superseded by the generation bump inside Refresh.
func (c *Controller) SetWindow(ctx context.Context, window Window) error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return ErrNotOpen
	}
	if !window.Mode.Valid() {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInvalidView, window.Mode)
	}
	c.window = window
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh re-fetches the active window wholesale and replaces the cached
// set, provided no newer refresh started meanwhile. On fetch failure the
// previous set is kept and ErrFetchFailure returned so callers can surface
// the stale-data condition.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return ErrNotOpen
	}
	c.gen++
	gen := c.gen
	est := c.est
	window := c.window
	c.mu.Unlock()

	from, to := window.Bounds()
	apps, err := c.repo.ListWindow(ctx, domain.AppointmentsFilter{
		EstablishmentID: est,
		From:            ptr.Ptr(from),
		To:              ptr.Ptr(to),
		IncludeVoided:   true,
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open || gen != c.gen {
		// Superseded by a later refresh or by Close; drop the result.
		c.metrics.ObserveAgendaRefresh("superseded")
		return nil
	}
	if err != nil {
		c.metrics.ObserveAgendaRefresh("error")
		c.logger.Error("Refresh: establishment=%s window=%s: %v", est, window.Mode, err)
		return fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}

	c.appointments = apps
	c.metrics.ObserveAgendaRefresh("ok")
	return nil
}

// Appointments returns a snapshot of the last successfully fetched window.
func (c *Controller) Appointments() []*domain.Appointment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*domain.Appointment, len(c.appointments))
	copy(out, c.appointments)
	return out
}

// Window returns the active window.
func (c *Controller) Window() Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}

func (c *Controller) loop(ctx context.Context, sub Subscription, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub.Events():
			if !ok {
				return
			}
			refreshCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			if err := c.Refresh(refreshCtx); err != nil {
				c.logger.Warn("loop: refresh after change event: %v", err)
			}
			cancel()
		}
	}
}
