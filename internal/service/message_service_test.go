package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"campus-hub/internal/dto"
	"campus-hub/internal/messaging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMessageService(t *testing.T) {
	alice, bob, eve := newProfile(nil), newProfile(nil), newProfile(nil)
	store := &fakeMessages{}
	pub := &recordingPublisher{}
	svc := NewMessageService(store, newFakeProfiles(alice, bob, eve), pub, zap.NewNop())
	ctx := context.Background()

	conv, err := svc.Start(ctx, alice.UserID, &dto.StartConversationRequest{ProfileID: bob.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, bob.ID.String(), conv.PeerID)

	again, err := svc.Start(ctx, bob.UserID, &dto.StartConversationRequest{ProfileID: alice.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID, "one conversation per pair")
	assert.Equal(t, alice.ID.String(), again.PeerID)

	_, err = svc.Start(ctx, alice.UserID, &dto.StartConversationRequest{ProfileID: alice.ID.String()})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Start(ctx, alice.UserID, &dto.StartConversationRequest{ProfileID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNotFound)

	convID := uuid.MustParse(conv.ID)
	msg, err := svc.Send(ctx, alice.UserID, convID, "  hello \xff")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Body)
	assert.Equal(t, alice.ID.String(), msg.SenderID)
	assert.Equal(t, []publishedEvent{{messaging.MessageSubject(conv.ID), "message.created"}}, pub.events)

	_, err = svc.Send(ctx, alice.UserID, convID, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Send(ctx, alice.UserID, convID, strings.Repeat("a", maxMessageLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Send(ctx, eve.UserID, convID, "hi")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Messages(ctx, eve.UserID, convID, time.Time{}, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	msgs, err := svc.Messages(ctx, bob.UserID, convID, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, msg.ID, msgs[0].ID)

	convs, err := svc.Conversations(ctx, bob.UserID)
	require.NoError(t, err)
	require.Len(t, convs, 1)

	convs, err = svc.Conversations(ctx, eve.UserID)
	require.NoError(t, err)
	assert.Empty(t, convs)
}
