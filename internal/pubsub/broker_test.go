package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// reload mirrors the payload shape the menus service publishes after each
// assembly.
type reload struct {
	SnapshotID string
	Actions    int
}

func TestBroker_DeliversReload(t *testing.T) {
	broker := NewBroker[reload]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(ReloadedEvent, reload{SnapshotID: "snap-1", Actions: 9})

	select {
	case event := <-ch:
		require.Equal(t, ReloadedEvent, event.Type)
		require.Equal(t, "snap-1", event.Payload.SnapshotID)
		require.Equal(t, 9, event.Payload.Actions)
		require.False(t, event.Timestamp.IsZero())
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for reload event")
	}
}

func TestBroker_FanOut(t *testing.T) {
	// The browser and the debug overlay both subscribe; each gets every
	// reload.
	broker := NewBroker[reload]()
	defer broker.Close()

	ctx := context.Background()
	browser := broker.Subscribe(ctx)
	overlay := broker.Subscribe(ctx)
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(ReloadedEvent, reload{SnapshotID: "snap-2"})

	for name, ch := range map[string]<-chan Event[reload]{"browser": browser, "overlay": overlay} {
		select {
		case event := <-ch:
			require.Equal(t, "snap-2", event.Payload.SnapshotID, name)
		case <-time.After(100 * time.Millisecond):
			require.Fail(t, "timeout", name)
		}
	}
}

func TestBroker_ContextCancelUnsubscribes(t *testing.T) {
	broker := NewBroker[reload]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()
	require.Eventually(t, func() bool {
		return broker.SubscriberCount() == 0
	}, time.Second, 5*time.Millisecond)

	_, open := <-ch
	require.False(t, open, "channel should be closed after cancel")
}

func TestBroker_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	// A browser that stopped draining must never stall assembly. With a
	// one-slot buffer only the first reload fits; the rest are dropped.
	broker := NewBrokerWithBuffer[reload](1)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())

	published := make(chan struct{})
	go func() {
		broker.Publish(ReloadedEvent, reload{SnapshotID: "snap-1"})
		broker.Publish(ReloadedEvent, reload{SnapshotID: "snap-2"})
		broker.Publish(ReloadedEvent, reload{SnapshotID: "snap-3"})
		close(published)
	}()

	select {
	case <-published:
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "Publish blocked on a full subscriber")
	}

	event := <-ch
	require.Equal(t, "snap-1", event.Payload.SnapshotID)
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker[reload]()

	ctx := context.Background()
	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)

	broker.Close()

	_, open1 := <-ch1
	_, open2 := <-ch2
	require.False(t, open1)
	require.False(t, open2)
	require.Equal(t, 0, broker.SubscriberCount())

	// Subscribing to a closed broker yields an already-closed channel.
	ch3 := broker.Subscribe(ctx)
	_, open3 := <-ch3
	require.False(t, open3)

	// Publishing after close is a no-op, not a panic.
	broker.Publish(ReloadedEvent, reload{SnapshotID: "late"})
}

func TestBroker_CloseIdempotent(t *testing.T) {
	broker := NewBroker[reload]()
	ch := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close()
	broker.Close()

	_, open := <-ch
	require.False(t, open)
}
