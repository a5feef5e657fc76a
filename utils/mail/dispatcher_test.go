package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSender fails a configured number of times before succeeding.
type stubSender struct {
	mu       sync.Mutex
	failures int
	attempts []uuid.UUID
}

func (s *stubSender) SendBookingConfirmation(ctx context.Context, bookingID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, bookingID)
	if s.failures > 0 {
		s.failures--
		return "", errors.New("upstream unavailable")
	}
	return "email_test_id", nil
}

func (s *stubSender) attemptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

func TestDispatcherDeliversAfterRetries(t *testing.T) {
	sender := &stubSender{failures: 2}
	d := NewDispatcher(sender, 8, 3)
	d.backoff = time.Millisecond

	d.Start(context.Background())
	d.Enqueue(uuid.New())
	d.Stop()

	assert.Equal(t, 3, sender.attemptCount())
}

func TestDispatcherGivesUpAfterMaxRetries(t *testing.T) {
	sender := &stubSender{failures: 100}
	d := NewDispatcher(sender, 8, 2)
	d.backoff = time.Millisecond

	d.Start(context.Background())
	d.Enqueue(uuid.New())
	d.Stop()

	assert.Equal(t, 2, sender.attemptCount())
}

func TestDispatcherProcessesQueueInOrder(t *testing.T) {
	sender := &stubSender{}
	d := NewDispatcher(sender, 8, 3)
	d.backoff = time.Millisecond

	first := uuid.New()
	second := uuid.New()

	d.Start(context.Background())
	d.Enqueue(first)
	d.Enqueue(second)
	d.Stop()

	require.Len(t, sender.attempts, 2)
	assert.Equal(t, first, sender.attempts[0])
	assert.Equal(t, second, sender.attempts[1])
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	sender := &stubSender{}
	d := NewDispatcher(sender, 1, 1)

	// Worker never started, so the single buffered slot fills and the rest
	// are dropped instead of blocking the caller.
	d.Enqueue(uuid.New())
	d.Enqueue(uuid.New())
	d.Enqueue(uuid.New())

	assert.Len(t, d.jobs, 1)
}

func TestDispatcherEnqueueAfterStopDropsQuietly(t *testing.T) {
	sender := &stubSender{}
	d := NewDispatcher(sender, 8, 1)

	d.Start(context.Background())
	d.Stop()

	assert.NotPanics(t, func() {
		d.Enqueue(uuid.New())
	})
	assert.Zero(t, sender.attemptCount())
}

func TestNewDispatcherDefaults(t *testing.T) {
	d := NewDispatcher(&stubSender{}, 0, 0)
	assert.Equal(t, 64, cap(d.jobs))
	assert.Equal(t, 3, d.maxRetries)
}
