package mail

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lfreelance/Bhimsons/logger"
)

// Sender sends the confirmation email for a booking. *Service satisfies it.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) (string, error)
}

// Dispatcher decouples email delivery from the payment-verification
// response: verification enqueues a booking id and returns immediately, a
// worker goroutine sends with bounded retries. Delivery failure never
// reaches the payment caller.
type Dispatcher struct {
	sender     Sender
	jobs       chan uuid.UUID
	maxRetries int
	backoff    time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher with the given queue size and retry
// budget.
func NewDispatcher(sender Sender, queueSize, maxRetries int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 64
	}
	if maxRetries < 1 {
		maxRetries = 3
	}
	return &Dispatcher{
		sender:     sender,
		jobs:       make(chan uuid.UUID, queueSize),
		maxRetries: maxRetries,
		backoff:    2 * time.Second,
		done:       make(chan struct{}),
	}
}

// Start launches the worker goroutine. The context bounds each delivery
// attempt's lifetime.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		go d.run(ctx)
	})
}

// Enqueue schedules a confirmation email without blocking. When the queue is
// full, or the dispatcher is already stopped, the job is dropped with an
// error log; the booking is already confirmed and the email can be re-sent
// through the email endpoint.
func (d *Dispatcher) Enqueue(bookingID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		logger.ErrorLogger.Errorf("Email dispatcher stopped, dropping confirmation for booking %s", bookingID)
		return
	}

	select {
	case d.jobs <- bookingID:
		logger.InfoLogger.Infof("Confirmation email queued for booking %s", bookingID)
	default:
		logger.ErrorLogger.Errorf("Email queue full, dropping confirmation for booking %s", bookingID)
	}
}

// Stop drains the queue and waits for the worker to exit. Enqueue calls
// arriving after Stop are dropped, never sent on the closed channel.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()

		close(d.jobs)
		<-d.done
	})
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)

	for bookingID := range d.jobs {
		d.deliver(ctx, bookingID)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, bookingID uuid.UUID) {
	for attempt := 1; attempt <= d.maxRetries; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		emailID, err := d.sender.SendBookingConfirmation(sendCtx, bookingID)
		cancel()

		if err == nil {
			logger.InfoLogger.Infof("Confirmation email %s delivered for booking %s (attempt %d)", emailID, bookingID, attempt)
			return
		}

		logger.WarnLogger.Warnf("Confirmation email attempt %d/%d failed for booking %s: %v",
			attempt, d.maxRetries, bookingID, err)

		if attempt < d.maxRetries {
			select {
			case <-time.After(d.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				logger.ErrorLogger.Errorf("Email dispatcher stopping, giving up on booking %s: %v", bookingID, ctx.Err())
				return
			}
		}
	}
	logger.ErrorLogger.Errorf("Confirmation email permanently failed for booking %s after %d attempts", bookingID, d.maxRetries)
}
