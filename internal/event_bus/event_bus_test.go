package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("typed handlers receive matching payloads in subscription order", func(t *testing.T) {
		bus := NewEventBus()
		var calls []string
		SubscribeTyped[TimeEntryChanged](bus, TimeEntryCreatedEvent, func(e EventT[TimeEntryChanged]) error {
			calls = append(calls, "first")
			assert.Equal(t, 12.0, e.Data.Hours)
			return nil
		})
		SubscribeTyped[TimeEntryChanged](bus, TimeEntryCreatedEvent, func(e EventT[TimeEntryChanged]) error {
			calls = append(calls, "second")
			return nil
		})
		SubscribeTyped[TimeEntryChanged](bus, TimeEntryDeletedEvent, func(e EventT[TimeEntryChanged]) error {
			calls = append(calls, "deleted")
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), TimeEntryCreatedEvent, TimeEntryChanged{Id: 1, Hours: 12}))

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("payload of another type is skipped", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		SubscribeTyped[TimeEntryChanged](bus, TimeEntryUpdatedEvent, func(e EventT[TimeEntryChanged]) error {
			called = true
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), TimeEntryUpdatedEvent, "not an entry"))

		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("errors and panics are collected", func(t *testing.T) {
		bus := NewEventBus()
		failure := errors.New("boom")
		secondCalled := false
		bus.Subscribe(TimeEntryCreatedEvent, func(e Event) error { return failure })
		bus.Subscribe(TimeEntryCreatedEvent, func(e Event) error { panic("oops") })
		bus.Subscribe(TimeEntryCreatedEvent, func(e Event) error {
			secondCalled = true
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), TimeEntryCreatedEvent, nil))

		require.Error(t, err)
		assert.ErrorIs(t, err, failure)
		assert.Contains(t, err.Error(), "panicked")
		assert.True(t, secondCalled)
	})

	t.Run("unsubscribed handler is not called", func(t *testing.T) {
		bus := NewEventBus()
		called := false
		unsubscribe := bus.Subscribe(TimeEntryDeletedEvent, func(e Event) error {
			called = true
			return nil
		})
		unsubscribe()

		require.NoError(t, bus.Publish(NewEvent(context.Background(), TimeEntryDeletedEvent, nil)))
		assert.False(t, called)
	})

	t.Run("cancelled context is rejected", func(t *testing.T) {
		bus := NewEventBus()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := bus.Publish(NewEvent(ctx, TimeEntryCreatedEvent, nil))

		assert.ErrorIs(t, err, context.Canceled)
	})
}
