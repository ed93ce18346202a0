package pubsub

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContinuousListener_DeliversLogLine(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := NewContinuousListener(ctx, broker)

	broker.Publish(LoggedEvent, "[DEBUG] [history] undo")

	msg := listener.Listen()()
	ev, ok := msg.(Event[string])
	require.True(t, ok, "expected Event[string], got %T", msg)
	require.Equal(t, LoggedEvent, ev.Type)
	require.Equal(t, "[DEBUG] [history] undo", ev.Payload)
}

func TestContinuousListener_ReturnsNewestQueued(t *testing.T) {
	broker := NewBroker[fileEvent]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := NewContinuousListener(ctx, broker)

	broker.Publish(WatchErrorEvent, fileEvent{Path: "config.yaml", Err: errors.New("event overflow")})
	broker.Publish(ConfigChangedEvent, fileEvent{Path: "config.yaml"})
	broker.Publish(ConfigChangedEvent, fileEvent{Path: "config.yaml"})

	ev, ok := listener.Listen()().(Event[fileEvent])
	require.True(t, ok)
	require.Equal(t, ConfigChangedEvent, ev.Type)
	require.NoError(t, ev.Payload.Err)

	// Nothing is left behind for the next Listen.
	broker.Publish(LoggedEvent, fileEvent{Path: "other.yaml"})
	ev, ok = listener.Listen()().(Event[fileEvent])
	require.True(t, ok)
	require.Equal(t, "other.yaml", ev.Payload.Path)
}

func TestContinuousListener_ContextCancelled(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	listener := NewContinuousListener(ctx, broker)
	cancel()

	require.Nil(t, listener.Listen()())
}

func TestContinuousListener_BrokerClosed(t *testing.T) {
	broker := NewBroker[fileEvent]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := NewContinuousListener(ctx, broker)
	broker.Close()

	require.Nil(t, listener.Listen()())
}
