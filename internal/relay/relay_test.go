package relay_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	"github.com/KirkDiggler/saves-helper/internal/relay"
	mockrelay "github.com/KirkDiggler/saves-helper/internal/relay/mock"
	"github.com/KirkDiggler/saves-helper/internal/world"
)

// recordingReceiver keeps the last write per (message, token), like a record does.
type recordingReceiver struct {
	mu      sync.Mutex
	results map[string]saves.SaveResult
	applied map[string]bool
}

func newRecordingReceiver() *recordingReceiver {
	return &recordingReceiver{
		results: make(map[string]saves.SaveResult),
		applied: make(map[string]bool),
	}
}

func (r *recordingReceiver) HandleSaveRolled(_ context.Context, msg *relay.SaveRolled) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[msg.Message+"/"+msg.Token] = saves.SaveResult{
		DegreeOfSuccess: msg.DegreeOfSuccess,
		RollValue:       msg.RollValue,
	}
	return nil
}

func (r *recordingReceiver) HandleUpdateApplied(_ context.Context, msg *relay.UpdateApplied) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied[msg.Message+"/"+msg.Token] = true
	return nil
}

func newRelay(t *testing.T, transport relay.Transport, role world.Role) *relay.Relay {
	return relay.New(&relay.Config{
		Transport: transport,
		User:      &world.User{ID: "u", Role: role},
		Logger:    zaptest.NewLogger(t),
	})
}

func TestEncodeSaveRolled_WireShape(t *testing.T) {
	payload, err := relay.EncodeSaveRolled(&relay.SaveRolled{
		Message:         "m1",
		Token:           "Scene.s.Token.a",
		DegreeOfSuccess: saves.Success,
		RollValue:       17,
	})
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(payload, &wire))
	assert.Equal(t, map[string]any{
		"type":            "save-rolled",
		"message":         "m1",
		"token":           "Scene.s.Token.a",
		"degreeOfSuccess": float64(2),
		"rollValue":       float64(17),
	}, wire)
}

func TestDecode(t *testing.T) {
	decoded, err := relay.Decode([]byte(`{"type":"update-applied","message":"d1","token":"t1"}`))
	require.NoError(t, err)
	assert.Equal(t, &relay.UpdateApplied{Message: "d1", Token: "t1"}, decoded)

	decoded, err = relay.Decode([]byte(`{"type":"something-else"}`))
	require.NoError(t, err)
	assert.Nil(t, decoded)

	_, err = relay.Decode([]byte(`{"type":"save-rolled","message":"m","token":"t","degreeOfSuccess":7}`))
	assert.Error(t, err)

	_, err = relay.Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestRelay_GMAppliesPlayerResults(t *testing.T) {
	ctx := context.Background()
	bus := relay.NewMemoryBus()

	gm := newRelay(t, bus.Transport(), world.RoleGamemaster)
	player := newRelay(t, bus.Transport(), world.RolePlayer)

	gmReceiver := newRecordingReceiver()
	playerReceiver := newRecordingReceiver()

	unsubscribe, err := gm.Listen(ctx, gmReceiver)
	require.NoError(t, err)
	defer unsubscribe()
	_, err = player.Listen(ctx, playerReceiver)
	require.NoError(t, err)

	require.NoError(t, player.SendSaveRolled(ctx, &relay.SaveRolled{
		Message: "m1", Token: "t1", DegreeOfSuccess: saves.CriticalFailure, RollValue: 3,
	}))
	require.NoError(t, player.SendUpdateApplied(ctx, &relay.UpdateApplied{Message: "d1", Token: "t1"}))

	assert.Equal(t, saves.SaveResult{DegreeOfSuccess: saves.CriticalFailure, RollValue: 3}, gmReceiver.results["m1/t1"])
	assert.True(t, gmReceiver.applied["d1/t1"])
	assert.Empty(t, playerReceiver.results)
	assert.Empty(t, playerReceiver.applied)
}

func TestRelay_NonGMDropsInbound(t *testing.T) {
	ctx := context.Background()
	bus := relay.NewMemoryBus()

	sender := newRelay(t, bus.Transport(), world.RoleGamemaster)
	trusted := newRelay(t, bus.Transport(), world.RoleTrusted)
	receiver := newRecordingReceiver()
	_, err := trusted.Listen(ctx, receiver)
	require.NoError(t, err)

	require.NoError(t, sender.SendSaveRolled(ctx, &relay.SaveRolled{Message: "m", Token: "t", DegreeOfSuccess: saves.Success}))
	assert.Empty(t, receiver.results)
}

func TestRelay_DifferentTokensCommute(t *testing.T) {
	ctx := context.Background()
	a := &relay.SaveRolled{Message: "m", Token: "a", DegreeOfSuccess: saves.Failure, RollValue: 9}
	b := &relay.SaveRolled{Message: "m", Token: "b", DegreeOfSuccess: saves.Success, RollValue: 21}

	run := func(order ...*relay.SaveRolled) map[string]saves.SaveResult {
		bus := relay.NewMemoryBus()
		gm := newRelay(t, bus.Transport(), world.RoleGamemaster)
		player := newRelay(t, bus.Transport(), world.RolePlayer)
		receiver := newRecordingReceiver()
		_, err := gm.Listen(ctx, receiver)
		require.NoError(t, err)
		for _, msg := range order {
			require.NoError(t, player.SendSaveRolled(ctx, msg))
		}
		return receiver.results
	}

	assert.Equal(t, run(a, b), run(b, a))
}

func TestRelay_SameTokenLastWriteWins(t *testing.T) {
	ctx := context.Background()
	bus := relay.NewMemoryBus()
	gm := newRelay(t, bus.Transport(), world.RoleAssistant)
	player := newRelay(t, bus.Transport(), world.RolePlayer)
	receiver := newRecordingReceiver()
	_, err := gm.Listen(ctx, receiver)
	require.NoError(t, err)

	require.NoError(t, player.SendSaveRolled(ctx, &relay.SaveRolled{Message: "m", Token: "t", DegreeOfSuccess: saves.Failure, RollValue: 8}))
	require.NoError(t, player.SendSaveRolled(ctx, &relay.SaveRolled{Message: "m", Token: "t", DegreeOfSuccess: saves.Success, RollValue: 19}))

	assert.Equal(t, saves.SaveResult{DegreeOfSuccess: saves.Success, RollValue: 19}, receiver.results["m/t"])
}

func TestRelay_PublishesOnTopic(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mockrelay.NewMockTransport(ctrl)
	r := newRelay(t, transport, world.RolePlayer)

	expected, err := relay.EncodeUpdateApplied(&relay.UpdateApplied{Message: "d", Token: "t"})
	require.NoError(t, err)

	transport.EXPECT().
		Publish(gomock.Any(), "module.pf2e-saves-helper", expected).
		Return(nil)

	require.NoError(t, r.SendUpdateApplied(context.Background(), &relay.UpdateApplied{Message: "d", Token: "t"}))
}

func TestRelay_UnsubscribeStopsDelivery(t *testing.T) {
	ctx := context.Background()
	bus := relay.NewMemoryBus()
	gm := newRelay(t, bus.Transport(), world.RoleGamemaster)
	player := newRelay(t, bus.Transport(), world.RolePlayer)
	receiver := newRecordingReceiver()

	unsubscribe, err := gm.Listen(ctx, receiver)
	require.NoError(t, err)
	unsubscribe()

	require.NoError(t, player.SendUpdateApplied(ctx, &relay.UpdateApplied{Message: "d", Token: "t"}))
	assert.Empty(t, receiver.applied)
}
