package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caffio-app/caffio-api/models"
)

type stubFetcher struct {
	mu     sync.Mutex
	orders []models.Order
	err    error
}

func (f *stubFetcher) FetchOrders(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *stubFetcher) set(orders ...models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = orders
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(orderID uint, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, body)
	return nil
}

func (n *recordingNotifier) bodies() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}

func TestPollDetectsStatusChange(t *testing.T) {
	fetcher := &stubFetcher{}
	notifier := &recordingNotifier{}
	poller := NewPoller(fetcher, notifier)
	ctx := context.Background()

	// First poll seeds the snapshot: the pending order is already known to
	// the customer who just placed it
	fetcher.set(models.Order{ID: 1, Status: models.StatusPending})
	assert.NoError(t, poller.Poll(ctx))
	assert.Empty(t, notifier.bodies())

	// Admin marks the order ready; the next poll raises exactly one
	// notification with the fixed copy for ready
	fetcher.set(models.Order{ID: 1, Status: models.StatusReady})
	assert.NoError(t, poller.Poll(ctx))
	assert.Equal(t, []string{"Your order is ready for pickup!"}, notifier.bodies())
}

func TestPollIsIdempotent(t *testing.T) {
	fetcher := &stubFetcher{}
	notifier := &recordingNotifier{}
	poller := NewPoller(fetcher, notifier)
	ctx := context.Background()

	fetcher.set(models.Order{ID: 1, Status: models.StatusPending})
	assert.NoError(t, poller.Poll(ctx))

	fetcher.set(models.Order{ID: 1, Status: models.StatusReady})
	assert.NoError(t, poller.Poll(ctx))

	// A duplicate poll (timer + foreground overlap) sees no further diff
	assert.NoError(t, poller.Poll(ctx))
	assert.NoError(t, poller.Poll(ctx))
	assert.Equal(t, []string{"Your order is ready for pickup!"}, notifier.bodies())
}

func TestPollOneNotificationPerChangedOrder(t *testing.T) {
	fetcher := &stubFetcher{}
	notifier := &recordingNotifier{}
	poller := NewPoller(fetcher, notifier)
	ctx := context.Background()

	fetcher.set(
		models.Order{ID: 1, Status: models.StatusPending},
		models.Order{ID: 2, Status: models.StatusPreparing},
		models.Order{ID: 3, Status: models.StatusPending},
	)
	assert.NoError(t, poller.Poll(ctx))

	fetcher.set(
		models.Order{ID: 1, Status: models.StatusReady},
		models.Order{ID: 2, Status: models.StatusPreparing}, // unchanged
		models.Order{ID: 3, Status: models.StatusCancelled},
	)
	assert.NoError(t, poller.Poll(ctx))

	bodies := notifier.bodies()
	assert.Len(t, bodies, 2)
	assert.Contains(t, bodies, "Your order is ready for pickup!")
	assert.Contains(t, bodies, "Your order has been cancelled.")
}

func TestPollNewOrderAfterSeeding(t *testing.T) {
	fetcher := &stubFetcher{}
	notifier := &recordingNotifier{}
	poller := NewPoller(fetcher, notifier)
	ctx := context.Background()

	fetcher.set(models.Order{ID: 1, Status: models.StatusDelivered})
	assert.NoError(t, poller.Poll(ctx))

	// An order placed from another device shows up as a diff
	fetcher.set(
		models.Order{ID: 1, Status: models.StatusDelivered},
		models.Order{ID: 2, Status: models.StatusPending},
	)
	assert.NoError(t, poller.Poll(ctx))
	assert.Equal(t, []string{"Your order has been received!"}, notifier.bodies())
}

func TestPollSwallowsNotifierFailures(t *testing.T) {
	fetcher := &stubFetcher{}
	notifier := &recordingNotifier{err: errors.New("permission denied")}
	poller := NewPoller(fetcher, notifier)
	ctx := context.Background()

	fetcher.set(models.Order{ID: 1, Status: models.StatusPending})
	assert.NoError(t, poller.Poll(ctx))

	fetcher.set(models.Order{ID: 1, Status: models.StatusReady})
	// Emission failure never surfaces on the poll itself
	assert.NoError(t, poller.Poll(ctx))
}

func TestPollPropagatesFetchErrors(t *testing.T) {
	fetchErr := errors.New("network down")
	fetcher := &stubFetcher{err: fetchErr}
	poller := NewPoller(fetcher, &recordingNotifier{})

	err := poller.Poll(context.Background())
	assert.ErrorIs(t, err, fetchErr)
}

func TestMessageFor(t *testing.T) {
	tests := []struct {
		status models.OrderStatus
		want   string
	}{
		{models.StatusPending, "Your order has been received!"},
		{models.StatusPreparing, "Your order is being prepared."},
		{models.StatusReady, "Your order is ready for pickup!"},
		{models.StatusOnTheWay, "Your order is on the way!"},
		{models.StatusDelivered, "Your order has been delivered. Enjoy!"},
		{models.StatusCancelled, "Your order has been cancelled."},
		{"mystery", "Your order status has been updated."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MessageFor(tt.status))
	}
}

func TestForegroundCoalesces(t *testing.T) {
	poller := NewPoller(&stubFetcher{}, &recordingNotifier{})

	// Multiple foreground signals before a poll collapse into one
	poller.Foreground()
	poller.Foreground()
	poller.Foreground()

	select {
	case <-poller.foreground:
	default:
		t.Fatal("expected a pending foreground signal")
	}
	select {
	case <-poller.foreground:
		t.Fatal("foreground signals should coalesce")
	default:
	}
}
