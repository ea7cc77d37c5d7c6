package chat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/saves-helper/internal/chat"
	mockchat "github.com/KirkDiggler/saves-helper/internal/chat/mock"
	dnderr "github.com/KirkDiggler/saves-helper/internal/errors"
)

func TestObservedStore_NotifiesCommittedWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	inner := mockchat.NewMockStore(ctrl)

	var changes []*chat.Change
	store := chat.NewObservedStore(inner, func(_ context.Context, change *chat.Change) {
		changes = append(changes, change)
	})

	inner.EXPECT().Create(ctx, gomock.Any()).Return(&chat.Message{ID: "m1"}, nil)
	inner.EXPECT().Update(ctx, "m1", chat.Patch{"content": "x"}).Return(&chat.Message{ID: "m1", Content: "x"}, nil)
	inner.EXPECT().Update(ctx, "m2", gomock.Any()).Return(nil, dnderr.NotFound("m2"))
	inner.EXPECT().Delete(ctx, "m1").Return(nil)

	_, err := store.Create(ctx, &chat.Message{})
	require.NoError(t, err)
	_, err = store.Update(ctx, "m1", chat.Patch{"content": "x"})
	require.NoError(t, err)
	_, err = store.Update(ctx, "m2", chat.Patch{"content": "x"})
	require.Error(t, err)
	require.NoError(t, store.Delete(ctx, "m1"))

	require.Len(t, changes, 3)
	assert.Equal(t, chat.ChangeCreated, changes[0].Type)
	assert.Equal(t, chat.ChangeUpdated, changes[1].Type)
	assert.Equal(t, "x", changes[1].Message.Content)
	assert.Equal(t, chat.ChangeDeleted, changes[2].Type)
	assert.Equal(t, "m1", changes[2].ID)
}
