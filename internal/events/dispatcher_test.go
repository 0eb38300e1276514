package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishSubscribe(t *testing.T) {
	var reported []error
	d := NewInMemoryDispatcher(func(_ Event, err error) { reported = append(reported, err) })

	var calls []string
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		calls = append(calls, "first:"+e.Actor)
		return errors.New("boom")
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		calls = append(calls, "second:"+e.Actor)
		return nil
	})
	d.Subscribe(EventUnhandledError, func(context.Context, Event) error {
		calls = append(calls, "unexpected")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventUserRegistered, "bob", UserRegisteredPayload{UserID: 1, Username: "bob"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"first:bob", "second:bob"}, calls)
	require.Len(t, reported, 1)
	assert.EqualError(t, reported[0], "boom")
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventUnhandledError, "", UnhandledErrorPayload{Path: "/api/authentication/login", Method: "POST"})

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventUnhandledError, e.Type)
	assert.False(t, e.Timestamp.IsZero())
}
