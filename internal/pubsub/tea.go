package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd returns a command that delivers the next event on ch as a
// tea.Msg. Commands are single-shot, so the model re-issues the command
// after handling each message; the browser does exactly that for snapshot
// reloads. A nil msg means the stream ended (context cancelled or channel
// closed) and no further command should be issued.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case evt, open := <-ch:
			if !open {
				return nil
			}
			return evt
		}
	}
}

// ContinuousListener owns a broker subscription on behalf of a Bubble Tea
// model, so the model carries one value instead of a context/channel pair.
// The log overlay listens to entry events through one of these.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker. The subscription ends when
// ctx is cancelled.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{ctx: ctx, ch: broker.Subscribe(ctx)}
}

// Listen returns the command for the next event. Call it again after each
// delivered event to keep the stream going.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}
