package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucmas92/message-wall/internal/database"
	"github.com/lucmas92/message-wall/internal/models"
)

func TestCreateMessage_AssignsOrderedIDs(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	a, err := s.CreateMessage(ctx, "primo", now)
	require.NoError(t, err)
	b, err := s.CreateMessage(ctx, "secondo", now)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, a.Status)
	assert.Less(t, a.ID, b.ID, "ids follow creation order")
}

func TestGetMessage_NotFound(t *testing.T) {
	s := New()
	_, err := s.GetMessage(context.Background(), 99)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestListMessages_MostRecentFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	first, _ := s.CreateMessage(ctx, "primo", now)
	second, _ := s.CreateMessage(ctx, "secondo", now)

	all, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestUpdateMessageStatus_AtomicPair(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()
	msg, _ := s.CreateMessage(ctx, "ciao", now)

	until := now.Add(45 * time.Second)
	updated, err := s.UpdateMessageStatus(ctx, msg.ID, models.StatusApproved, &until)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	require.NotNil(t, updated.DisplayUntil)
	assert.True(t, updated.DisplayUntil.Equal(until))

	updated, err = s.UpdateMessageStatus(ctx, msg.ID, models.StatusRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
	assert.Nil(t, updated.DisplayUntil)
}

func TestUpdateMessageStatus_NotFound(t *testing.T) {
	s := New()
	_, err := s.UpdateMessageStatus(context.Background(), 7, models.StatusApproved, nil)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCountMessages(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	s.CreateMessage(ctx, "uno", now)
	msg, _ := s.CreateMessage(ctx, "due", now)
	until := now.Add(time.Minute)
	_, err := s.UpdateMessageStatus(ctx, msg.ID, models.StatusApproved, &until)
	require.NoError(t, err)

	pending, err := s.CountMessages(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	approved, err := s.CountMessages(ctx, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, 1, approved)
}

func TestReturnedMessagesAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	msg, _ := s.CreateMessage(ctx, "ciao", time.Now().UTC())

	msg.Text = "manomesso"
	msg.Status = models.StatusApproved

	stored, err := s.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "ciao", stored.Text)
	assert.Equal(t, models.StatusPending, stored.Status)
}
