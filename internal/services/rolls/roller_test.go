package rolls_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	mockdice "github.com/KirkDiggler/saves-helper/internal/dice/mock"
	"github.com/KirkDiggler/saves-helper/internal/domain/saves"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
	"github.com/KirkDiggler/saves-helper/internal/scene"
	"github.com/KirkDiggler/saves-helper/internal/services/rolls"
	"github.com/KirkDiggler/saves-helper/internal/testutils"
)

func TestDiceCheckRoller_TransientMessage(t *testing.T) {
	ctx := context.Background()
	w := testutils.NewWorld()
	token, actor := w.AddToken("goblin", testutils.CreateTestCreature("goblin", "Goblin", 6, 5), scene.Cell{})

	dice := mockdice.NewManualMockRoller()
	dice.SetNextRoll(14)
	roller := rolls.NewDiceCheckRoller(&rolls.DiceCheckRollerConfig{Dice: dice, Store: w.Store, User: gmUser})

	var (
		got    *rolls.CheckResult
		gotMsg *chat.Message
	)
	err := roller.RollCheck(ctx, &rolls.CheckRequest{
		Token:      token,
		Actor:      actor,
		Statistic:  actor.Statistic("will"),
		ItemUUID:   "Item.fear",
		DC:         19,
		Identifier: "msg9",
		RollMode:   rolls.RollModePublic,
		Callback: func(_ context.Context, result *rolls.CheckResult, rollMessage *chat.Message) error {
			got, gotMsg = result, rollMessage
			return nil
		},
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	require.NotNil(t, got.Degree)
	assert.Equal(t, saves.Success, *got.Degree)
	assert.Equal(t, 19, got.Total)
	assert.Equal(t, 14, got.Natural)

	require.NotNil(t, gotMsg)
	assert.Empty(t, gotMsg.ID)
	assert.Equal(t, token.UUID, gotMsg.Host().Context.Target.Token)

	stored, err := w.Store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestDiceCheckRoller_NoDCLeavesDegreeUnset(t *testing.T) {
	ctx := context.Background()
	w := testutils.NewWorld()
	token, actor := w.AddToken("goblin", testutils.CreateTestCreature("goblin", "Goblin", 6, 5), scene.Cell{})

	dice := mockdice.NewManualMockRoller()
	dice.SetNextRoll(14)
	roller := rolls.NewDiceCheckRoller(&rolls.DiceCheckRollerConfig{Dice: dice, Store: w.Store, User: gmUser})

	called := false
	err := roller.RollCheck(ctx, &rolls.CheckRequest{
		Token:         token,
		Statistic:     actor.Statistic("fortitude"),
		CreateMessage: true,
		Callback: func(_ context.Context, result *rolls.CheckResult, rollMessage *chat.Message) error {
			called = true
			assert.Nil(t, result.Degree)
			assert.NotEmpty(t, rollMessage.ID)
			return nil
		},
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestDiceCheckRoller_RequiresStatistic(t *testing.T) {
	w := testutils.NewWorld()
	roller := rolls.NewDiceCheckRoller(&rolls.DiceCheckRollerConfig{Store: w.Store, User: gmUser})

	err := roller.RollCheck(context.Background(), &rolls.CheckRequest{})
	assert.True(t, dnderr.IsInvalidArgument(err))
}
