package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event[T]{}
	}
}

func TestBroker_PublishReachesAllSubscribers(t *testing.T) {
	b := NewBroker[string]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := b.Subscribe(ctx)
	c := b.Subscribe(ctx)
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(ReloadedEvent, "v2")

	for _, ch := range []<-chan Event[string]{a, c} {
		ev := receive(t, ch)
		require.Equal(t, ReloadedEvent, ev.Type)
		require.Equal(t, "v2", ev.Payload)
		require.False(t, ev.Timestamp.IsZero())
	}
}

func TestBroker_PublishError(t *testing.T) {
	b := NewBroker[int]()
	ch := b.Subscribe(context.Background())

	b.PublishError(errors.New("boom"))

	ev := receive(t, ch)
	require.Equal(t, FailedEvent, ev.Type)
	require.EqualError(t, ev.Err, "boom")
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	b := NewBroker[string]()
	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)

	cancel()

	require.Eventually(t, func() bool { return b.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-ch
	require.False(t, ok, "channel should be closed after cancel")
}

func TestBroker_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	b := NewBroker[int]()
	ch := b.Subscribe(context.Background())

	for i := 0; i < defaultBufferSize*2; i++ {
		b.Publish(ReloadedEvent, i)
	}

	require.Len(t, ch, defaultBufferSize)
}

func TestBroker_Close(t *testing.T) {
	b := NewBroker[string]()
	ch := b.Subscribe(context.Background())

	b.Close()
	b.Close()

	_, ok := <-ch
	require.False(t, ok)

	late := b.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok, "subscribing after close returns a closed channel")

	b.Publish(ReloadedEvent, "ignored")
}

func TestListener_Listen(t *testing.T) {
	b := NewBroker[string]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx, b)
	b.Publish(ReloadedEvent, "hello")

	msg := l.Listen()()
	ev, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, "hello", ev.Payload)

	cancel()
	require.Nil(t, l.Listen()())
}
