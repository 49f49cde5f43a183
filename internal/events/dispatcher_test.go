package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, deleted int
	d.Subscribe(EventCaseCreated, func(ctx context.Context, e Event) error {
		created++
		return nil
	})
	d.Subscribe(EventCaseDeleted, func(ctx context.Context, e Event) error {
		deleted++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventCaseCreated, CaseID: "c1"}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventCaseCreated, CaseID: "c2"}))

	assert.Equal(t, 2, created)
	assert.Zero(t, deleted)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var second bool
	d.Subscribe(EventCaseCreated, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventCaseCreated, func(ctx context.Context, e Event) error {
		second = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventCaseCreated}))
	assert.True(t, second)
}
