package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu       sync.Mutex
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) Received() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]shared.DomainEvent, len(h.received))
	copy(out, h.received)
	return out
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to type-specific handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		adjusted := &recordingHandler{types: []string{inventory.EventTypeCountAdjusted}}
		renamed := &recordingHandler{types: []string{inventory.EventTypeItemRenamed}}
		bus.Subscribe(adjusted)
		bus.Subscribe(renamed)

		require.NoError(t, bus.Publish(ctx, inventory.NewCountAdjustedEvent(7, 3)))

		assert.Len(t, adjusted.Received(), 1)
		assert.Empty(t, renamed.Received())
	})

	t.Run("handlers without types receive every event", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		wildcard := &recordingHandler{}
		bus.Subscribe(wildcard)

		require.NoError(t, bus.Publish(ctx,
			inventory.NewCountAdjustedEvent(7, 3),
			inventory.NewItemRestoredEvent(7, 5),
		))

		assert.Len(t, wildcard.Received(), 2)
	})

	t.Run("a failing handler does not fail the publish", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{err: errors.New("boom")}
		healthy := &recordingHandler{}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, inventory.NewCountAdjustedEvent(7, 3)))

		assert.Len(t, healthy.Received(), 1)
	})

	t.Run("a panicking handler does not fail the publish", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{panics: true}
		healthy := &recordingHandler{}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, inventory.NewCountAdjustedEvent(7, 3)))

		assert.Len(t, healthy.Received(), 1)
	})

	t.Run("unsubscribed handlers stop receiving", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{}
		bus.Subscribe(handler)
		bus.Unsubscribe(handler)

		require.NoError(t, bus.Publish(ctx, inventory.NewCountAdjustedEvent(7, 3)))

		assert.Empty(t, handler.Received())
	})
}

func TestHandlerRegistry(t *testing.T) {
	t.Run("type handlers come before wildcard handlers", func(t *testing.T) {
		registry := NewHandlerRegistry()
		typed := &recordingHandler{}
		wildcard := &recordingHandler{}
		registry.Register(typed, inventory.EventTypeCountAdjusted)
		registry.Register(wildcard)

		handlers := registry.GetHandlers(inventory.EventTypeCountAdjusted)
		require.Len(t, handlers, 2)
		assert.Same(t, typed, handlers[0])
		assert.Same(t, wildcard, handlers[1])
	})

	t.Run("unregister removes from all types", func(t *testing.T) {
		registry := NewHandlerRegistry()
		handler := &recordingHandler{}
		registry.Register(handler, inventory.EventTypeCountAdjusted, inventory.EventTypeItemRenamed)
		registry.Unregister(handler)

		assert.Empty(t, registry.GetHandlers(inventory.EventTypeCountAdjusted))
		assert.Empty(t, registry.GetHandlers(inventory.EventTypeItemRenamed))
	})
}
