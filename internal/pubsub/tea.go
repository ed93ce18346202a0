package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ContinuousListener turns a broker subscription into tea.Cmds. Call
// Listen again after handling each event to keep receiving.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker until ctx is done.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Listen waits for the next event and returns it as a tea.Msg. When
// several events are already queued only the newest is returned.
// The message is nil once ctx is done or the broker is closed.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-l.ctx.Done():
			return nil
		case ev, ok := <-l.ch:
			if !ok {
				return nil
			}
			return newest(l.ch, ev)
		}
	}
}

// newest drains ch without blocking and returns the last event seen.
func newest[T any](ch <-chan Event[T], ev Event[T]) Event[T] {
	for {
		select {
		case next, ok := <-ch:
			if !ok {
				return ev
			}
			ev = next
		default:
			return ev
		}
	}
}
