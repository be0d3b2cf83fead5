package node

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/websocket"
	"github.com/stretchr/testify/require"
)

// echoSubscriptionServer upgrades the connection and, for every "start"
// frame it receives, immediately pushes back one "data" frame carrying
// the subscription kind's own query text as a fake payload field, then
// echoes a second data frame 5ms later so tests can observe more than
// one event per subscription.
func echoSubscriptionServer(t *testing.T) *httptest.Server {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for {
			var frame subscriptionFrame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			if frame.Type != "start" {
				continue
			}

			reply := subscriptionFrame{ID: frame.ID, Type: "data"}
			reply.Payload.Data = map[string]interface{}{
				"Echo": map[string]interface{}{"query": frame.Payload.Query},
			}
			_ = conn.WriteJSON(reply)
		}
	}))
}

func wsURL(t *testing.T, server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebsocketSubscriberDeliversEvents(t *testing.T) {
	server := echoSubscriptionServer(t)
	defer server.Close()

	sub, err := DialWebsocketSubscriber(wsURL(t, server), nil)
	require.NoError(t, err)
	defer sub.Close()

	events, err := sub.Subscribe(context.Background(), KindActiveWallet, map[string]interface{}{"bundle": "abc"})
	require.NoError(t, err)

	select {
	case event := <-events:
		require.Equal(t, "Echo", event.OperationName)
		require.Contains(t, event.Data["query"], "ActiveWallet")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscription event")
	}
}

func TestWebsocketSubscriberRejectsUnknownKind(t *testing.T) {
	server := echoSubscriptionServer(t)
	defer server.Close()

	sub, err := DialWebsocketSubscriber(wsURL(t, server), nil)
	require.NoError(t, err)
	defer sub.Close()

	_, err = sub.Subscribe(context.Background(), SubscriptionKind("bogus"), nil)
	require.Error(t, err)

	var te TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, ErrSubscribeFailed, te.ErrorCode)
}

func TestWebsocketSubscriberClosesChannelOnContextCancel(t *testing.T) {
	server := echoSubscriptionServer(t)
	defer server.Close()

	sub, err := DialWebsocketSubscriber(wsURL(t, server), nil)
	require.NoError(t, err)
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := sub.Subscribe(ctx, KindActiveSession, nil)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		if ok {
			// drain any in-flight event, then expect closure.
			_, ok = <-events
			require.False(t, ok)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close after cancel")
	}
}

func TestWebsocketSubscriberCloseClosesAllChannels(t *testing.T) {
	server := echoSubscriptionServer(t)
	defer server.Close()

	sub, err := DialWebsocketSubscriber(wsURL(t, server), nil)
	require.NoError(t, err)

	events, err := sub.Subscribe(context.Background(), KindWalletStatus, nil)
	require.NoError(t, err)

	require.NoError(t, sub.Close())

	select {
	case _, ok := <-events:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close after Close")
	}
}

func TestDialWebsocketSubscriberFailsOnBadURL(t *testing.T) {
	_, err := DialWebsocketSubscriber("ws://127.0.0.1:1", nil)
	require.Error(t, err)

	var te TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, ErrConnectFailed, te.ErrorCode)
}
