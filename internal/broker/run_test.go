package broker

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRun(t *testing.T, ctx context.Context, b *Broker) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()
	return done
}

func waitRun(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("broker did not shut down")
	}
}

func newRunClient(b *Broker, username string) *testClient {
	c := &testClient{id: uuid.New(), send: make(chan []byte, 256)}
	b.Events() <- NewUser{
		ID:          c.id,
		Username:    username,
		GameVersion: testVersion,
		IP:          net.IPv4(127, 0, 0, 1),
		Send:        c.send,
	}
	return c
}

func TestRun_ShutdownOnEventChannelClose(t *testing.T) {
	b := newTestBroker()
	done := startRun(t, context.Background(), b)

	c := newRunClient(b, "foo")
	close(b.events)
	waitRun(t, done)

	assert.True(t, c.closed(), "outbound queue must be closed on shutdown")
}

func TestRun_ShutdownOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := newTestBroker()
	done := startRun(t, ctx, b)

	c := newRunClient(b, "foo")

	// Wait for the Welcome so the user is known to be registered before the
	// cancel races the event.
	select {
	case <-c.send:
	case <-time.After(5 * time.Second):
		t.Fatal("no welcome frame")
	}

	cancel()
	waitRun(t, done)
	assert.True(t, c.closed(), "outbound queue must be closed on shutdown")
}
