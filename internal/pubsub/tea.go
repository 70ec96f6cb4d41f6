package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Listener keeps a subscription alive across Bubble Tea updates.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to b for the lifetime of ctx.
func NewListener[T any](ctx context.Context, b *Broker[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: b.Subscribe(ctx)}
}

// Listen returns a command that yields the next event as a tea.Msg, or nil
// once the context is done or the channel is closed. Call it again after
// handling each event to keep listening.
func (l *Listener[T]) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-l.ctx.Done():
			return nil
		case event, ok := <-l.ch:
			if !ok {
				return nil
			}
			return event
		}
	}
}
