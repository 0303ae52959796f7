package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_PublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.SubjectID)
		return nil
	})
	d.Subscribe(EventUserLoggedOut, func(_ context.Context, e Event) error {
		got = append(got, "logout")
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventUserLoggedIn, "sub-1", nil))
	assert.NoError(t, err)
	assert.Equal(t, []string{"first:sub-1", "second:sub-1"}, got)
}

func TestDispatcher_PublishContinuesAfterError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	called := false
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error { return boom })
	d.Subscribe(EventUserRegistered, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := d.Publish(context.Background(), NewEvent(EventUserRegistered, "sub-1", nil))
	assert.ErrorIs(t, err, boom)
	assert.True(t, called)
}

func TestDispatcher_PublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), NewEvent(EventUserLoggedOut, "sub-1", nil)))
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventUserLoggedIn, "sub-1", LoginPayload{Email: "a@example.com"})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, EventUserLoggedIn, e.Type)
	assert.Equal(t, "sub-1", e.SubjectID)
	assert.False(t, e.Timestamp.IsZero())
}
