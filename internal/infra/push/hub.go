// Package push adapts the shared real-time connection to the reconciler.
// The process holds one Redis subscription for all transactions; individual
// flows add and remove filtered handlers, never open or close the
// connection themselves.
package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"eventpay/internal/pkg/errs"
	"eventpay/internal/usecase"

	"github.com/redis/go-redis/v9"
)

// Event is the wire payload on the payment update channel.
type Event struct {
	TransactionID    string `json:"id"`
	Status           string `json:"status"`
	Reason           string `json:"reason,omitempty"`
	ConfirmationCode string `json:"confirmationCode,omitempty"`
}

// Hub is the process-wide push connection manager. The underlying pub/sub
// subscription is opened when the first handler registers and closed when
// the last one leaves (reference counting instead of ad hoc global state).
type Hub struct {
	logger  *slog.Logger
	client  *redis.Client
	channel string

	mu       sync.Mutex
	handlers map[int]func(usecase.PushEvent)
	nextID   int
	pubsub   *redis.PubSub
	cancel   context.CancelFunc
}

func NewHub(logger *slog.Logger, client *redis.Client, channel string) *Hub {
	return &Hub{
		logger:   logger,
		client:   client,
		channel:  channel,
		handlers: make(map[int]func(usecase.PushEvent)),
	}
}

// Subscribe registers a handler on the shared subscription. The returned
// unsubscribe removes it synchronously and is safe to call more than once.
func (h *Hub) Subscribe(handler func(usecase.PushEvent)) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pubsub == nil {
		ctx, cancel := context.WithCancel(context.Background())
		pubsub := h.client.Subscribe(ctx, h.channel)
		if _, err := pubsub.Receive(ctx); err != nil {
			cancel()
			_ = pubsub.Close()
			return nil, errs.Wrap(err, "subscribe to payment channel")
		}
		h.pubsub = pubsub
		h.cancel = cancel
		go h.dispatch(pubsub.Channel())
		h.logger.Info("push channel opened", "channel", h.channel)
	}

	id := h.nextID
	h.nextID++
	h.handlers[id] = handler

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}, nil
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.handlers, id)
	if len(h.handlers) == 0 && h.pubsub != nil {
		_ = h.pubsub.Close()
		h.cancel()
		h.pubsub = nil
		h.cancel = nil
		h.logger.Info("push channel closed", "channel", h.channel)
	}
}

// dispatch fans messages out to a copy of the handler set. Handlers are
// invoked without the hub lock held; a handler that unsubscribes (or tears
// down its reconciler) from inside the callback cannot deadlock.
func (h *Hub) dispatch(messages <-chan *redis.Message) {
	for msg := range messages {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			h.logger.Warn("malformed push payload", "error", err)
			continue
		}
		update := usecase.PushEvent{
			TransactionID:    ev.TransactionID,
			Status:           parseStatus(ev.Status),
			Reason:           ev.Reason,
			ConfirmationCode: ev.ConfirmationCode,
		}

		h.mu.Lock()
		targets := make([]func(usecase.PushEvent), 0, len(h.handlers))
		for _, fn := range h.handlers {
			targets = append(targets, fn)
		}
		h.mu.Unlock()

		for _, fn := range targets {
			fn(update)
		}
	}
}

// Publish emits a payment update. Backend producers and the test suites use
// this; the reconciler itself only listens.
func (h *Hub) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "encode push event")
	}
	if err := h.client.Publish(ctx, h.channel, payload).Err(); err != nil {
		return errs.Wrap(err, "publish push event")
	}
	return nil
}

// The wire status is capitalized (Success/Failed); tolerate any casing.
func parseStatus(s string) usecase.TxStatus {
	switch strings.ToLower(s) {
	case "success":
		return usecase.TxStatusSuccess
	case "failed":
		return usecase.TxStatusFailed
	default:
		return usecase.TxStatusPending
	}
}
