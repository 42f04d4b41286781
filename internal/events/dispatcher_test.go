package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribedHandlers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var seen []EventType
	d.Subscribe(EventRescueCreated, func(ctx context.Context, event Event) error {
		seen = append(seen, event.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventRescueCreated}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventRescueSynced}))
	assert.Equal(t, []EventType{EventRescueCreated}, seen)
}

func TestPublishContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var calls []string
	d.Subscribe(EventRescueCreated, func(ctx context.Context, event Event) error {
		calls = append(calls, "first")
		return errors.New("handler broke")
	})
	d.Subscribe(EventRescueCreated, func(ctx context.Context, event Event) error {
		calls = append(calls, "second")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventRescueCreated}))
	assert.Equal(t, []string{"first", "second"}, calls)
}
