package wsrelay_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	"github.com/KirkDiggler/saves-helper/internal/relay"
	"github.com/KirkDiggler/saves-helper/internal/relay/wsrelay"
)

func startHub(t *testing.T) (*wsrelay.Hub, string) {
	hub := wsrelay.NewHub(&wsrelay.HubConfig{
		Logger:      zaptest.NewLogger(t),
		CheckOrigin: func(*http.Request) bool { return true },
	})
	mux := http.NewServeMux()
	mux.Handle("/relay", hub)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http") + "/relay"
}

func dial(t *testing.T, url string) *wsrelay.Transport {
	transport, err := wsrelay.Dial(context.Background(), url, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = transport.Close() })
	return transport
}

func TestHub_BroadcastsToOtherPeers(t *testing.T) {
	hub, url := startHub(t)
	sender := dial(t, url)
	receiver := dial(t, url)

	require.Eventually(t, func() bool { return hub.PeerCount() == 2 }, time.Second, 10*time.Millisecond)

	received := make(chan []byte, 1)
	echoed := make(chan []byte, 1)
	_, err := receiver.Subscribe(context.Background(), relay.Topic, func(_ context.Context, payload []byte) {
		received <- payload
	})
	require.NoError(t, err)
	_, err = sender.Subscribe(context.Background(), relay.Topic, func(_ context.Context, payload []byte) {
		echoed <- payload
	})
	require.NoError(t, err)

	payload, err := relay.EncodeSaveRolled(&relay.SaveRolled{
		Message: "m1", Token: "t1", DegreeOfSuccess: saves.Failure, RollValue: 11,
	})
	require.NoError(t, err)
	require.NoError(t, sender.Publish(context.Background(), relay.Topic, payload))

	select {
	case got := <-received:
		assert.JSONEq(t, string(payload), string(got))
	case <-time.After(2 * time.Second):
		t.Fatal("frame was not delivered")
	}

	select {
	case <-echoed:
		t.Fatal("sender received its own frame")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_RelayEndToEnd(t *testing.T) {
	_, url := startHub(t)
	gmTransport := dial(t, url)
	playerTransport := dial(t, url)

	applied := make(chan *relay.UpdateApplied, 1)
	gm := relay.New(&relay.Config{
		Transport: gmTransport,
		User:      gmUser,
		Logger:    zaptest.NewLogger(t),
	})
	_, err := gm.Listen(context.Background(), &receiverFunc{onApplied: func(msg *relay.UpdateApplied) {
		applied <- msg
	}})
	require.NoError(t, err)

	player := relay.New(&relay.Config{Transport: playerTransport, User: playerUser})
	require.NoError(t, player.SendUpdateApplied(context.Background(), &relay.UpdateApplied{Message: "d1", Token: "t1"}))

	select {
	case msg := <-applied:
		assert.Equal(t, &relay.UpdateApplied{Message: "d1", Token: "t1"}, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("update was not relayed")
	}
}

func TestTransport_DoneAfterHubCloses(t *testing.T) {
	hub := wsrelay.NewHub(nil)
	server := httptest.NewServer(hub)
	transport, err := wsrelay.Dial(context.Background(), "ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)

	defer server.Close()
	require.Eventually(t, func() bool { return hub.PeerCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()

	select {
	case <-transport.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("transport did not notice the closed hub")
	}
}
