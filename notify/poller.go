// Package notify implements the client-side order-status notification loop:
// a cooperative poll-and-diff against the orders API, not a server push.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/caffio-app/caffio-api/models"
)

// DefaultPollInterval is how often the poller refreshes while foregrounded
const DefaultPollInterval = 30 * time.Second

// statusMessages maps each order status to the user-facing notification body
var statusMessages = map[models.OrderStatus]string{
	models.StatusPending:   "Your order has been received!",
	models.StatusPreparing: "Your order is being prepared.",
	models.StatusReady:     "Your order is ready for pickup!",
	models.StatusOnTheWay:  "Your order is on the way!",
	models.StatusDelivered: "Your order has been delivered. Enjoy!",
	models.StatusCancelled: "Your order has been cancelled.",
}

// MessageFor returns the notification body for a status. Unknown statuses get
// a generic fallback rather than suppressing the notification.
func MessageFor(status models.OrderStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return "Your order status has been updated."
}

// OrderFetcher fetches the customer's current order list
type OrderFetcher interface {
	FetchOrders(ctx context.Context) ([]models.Order, error)
}

// Notifier emits a local notification. Emission failures are logged and
// swallowed; they never affect the order data path.
type Notifier interface {
	Notify(orderID uint, title, body string) error
}

// Poller polls the order list on a fixed interval and on foreground
// transitions, diffs statuses against the last-seen snapshot, and emits one
// notification per changed order.
type Poller struct {
	fetcher  OrderFetcher
	notifier Notifier
	interval time.Duration

	mu       sync.Mutex
	lastSeen map[uint]models.OrderStatus

	foreground chan struct{}
}

// NewPoller creates a poller with the default 30-second interval
func NewPoller(fetcher OrderFetcher, notifier Notifier) *Poller {
	return NewPollerWithInterval(fetcher, notifier, DefaultPollInterval)
}

// NewPollerWithInterval creates a poller with a custom interval
func NewPollerWithInterval(fetcher OrderFetcher, notifier Notifier, interval time.Duration) *Poller {
	return &Poller{
		fetcher:    fetcher,
		notifier:   notifier,
		interval:   interval,
		lastSeen:   make(map[uint]models.OrderStatus),
		foreground: make(chan struct{}, 1),
	}
}

// Poll fetches the order list once and emits notifications for every order
// whose status differs from the previous snapshot. The first poll only seeds
// the snapshot. Polls are idempotent: the snapshot is updated before emission,
// so an overlapping duplicate poll sees no further diffs.
func (p *Poller) Poll(ctx context.Context) error {
	orders, err := p.fetcher.FetchOrders(ctx)
	if err != nil {
		return err
	}

	type change struct {
		orderID uint
		status  models.OrderStatus
	}

	p.mu.Lock()
	seeded := len(p.lastSeen) > 0
	var changes []change
	for _, order := range orders {
		prev, known := p.lastSeen[order.ID]
		if seeded && (!known || prev != order.Status) {
			changes = append(changes, change{orderID: order.ID, status: order.Status})
		}
		p.lastSeen[order.ID] = order.Status
	}
	p.mu.Unlock()

	for _, ch := range changes {
		if err := p.notifier.Notify(ch.orderID, "Order update", MessageFor(ch.status)); err != nil {
			log.Printf("notify: failed to emit notification for order %d: %v", ch.orderID, err)
		}
	}

	return nil
}

// Foreground requests an immediate poll, used on app-foreground transitions.
// Non-blocking; coalesces with a pending request.
func (p *Poller) Foreground() {
	select {
	case p.foreground <- struct{}{}:
	default:
	}
}

// Run polls on the fixed interval and on Foreground signals until ctx is done
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.foreground:
		}

		if err := p.Poll(ctx); err != nil {
			log.Printf("notify: poll failed: %v", err)
		}
	}
}
