package wall

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucmas92/message-wall/internal/database"
	"github.com/lucmas92/message-wall/internal/database/memstore"
	"github.com/lucmas92/message-wall/internal/models"
	"github.com/lucmas92/message-wall/internal/notifier"
	"github.com/lucmas92/message-wall/internal/profanity"
)

// fakeClock is a settable time source for deterministic window tests.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(t *testing.T, opts ...Option) (*Service, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 6, 20, 21, 0, 0, 0, time.UTC)}
	hub := notifier.NewHub()
	t.Cleanup(hub.Close)

	opts = append([]Option{WithClock(clock.Now)}, opts...)
	svc := NewService(memstore.New(), profanity.NewMatcher(profanity.DefaultTerms()), hub, opts...)
	return svc, clock
}

func TestSubmit_CleanTextBecomesPending(t *testing.T) {
	svc, clock := newTestService(t)

	msg, err := svc.Submit(context.Background(), "this is fine")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, msg.Status)
	assert.Equal(t, "this is fine", msg.Text)
	assert.Equal(t, clock.Now(), msg.CreatedAt)
	assert.Nil(t, msg.DisplayUntil)
}

func TestSubmit_EmptyTextRejectedBeforeStore(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyText)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "rejected submission must never reach the store")
}

func TestSubmit_OversizedTextRejected(t *testing.T) {
	svc, _ := newTestService(t, WithMaxTextLength(10))

	_, err := svc.Submit(context.Background(), "questo testo supera il limite")
	assert.ErrorIs(t, err, ErrTextTooLong)
}

func TestSubmit_LeetspeakProfanityRejectedBeforeStore(t *testing.T) {
	svc, _ := newTestService(t)

	// digit substitutions on three letters of an aggressive root
	_, err := svc.Submit(context.Background(), "ma che c4zz0 dici")
	assert.ErrorIs(t, err, ErrProfanity)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTransition_ApproveSetsDisplayWindow(t *testing.T) {
	svc, clock := newTestService(t)
	msg := mustSubmit(t, svc, "auguri!")

	approved, err := svc.Transition(context.Background(), msg.ID, models.StatusApproved, "mod")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.DisplayUntil)
	assert.Equal(t, clock.Now().Add(DefaultDisplayDuration), *approved.DisplayUntil)
	assert.True(t, approved.DisplayUntil.After(approved.CreatedAt))
}

func TestTransition_RejectClearsDisplayWindow(t *testing.T) {
	svc, _ := newTestService(t)
	msg := mustSubmit(t, svc, "auguri!")

	_, err := svc.Transition(context.Background(), msg.ID, models.StatusApproved, "mod")
	require.NoError(t, err)

	rejected, err := svc.Transition(context.Background(), msg.ID, models.StatusRejected, "mod")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.Nil(t, rejected.DisplayUntil)
}

func TestTransition_BackToPendingClearsDisplayWindow(t *testing.T) {
	svc, _ := newTestService(t)
	msg := mustSubmit(t, svc, "auguri!")

	_, err := svc.Transition(context.Background(), msg.ID, models.StatusApproved, "mod")
	require.NoError(t, err)

	pending, err := svc.Transition(context.Background(), msg.ID, models.StatusPending, "mod")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, pending.Status)
	assert.Nil(t, pending.DisplayUntil)
}

func TestTransition_ReapproveRefreshesWindow(t *testing.T) {
	svc, clock := newTestService(t)
	msg := mustSubmit(t, svc, "auguri!")

	first, err := svc.Transition(context.Background(), msg.ID, models.StatusApproved, "mod")
	require.NoError(t, err)

	clock.Advance(30 * time.Second)

	second, err := svc.Transition(context.Background(), msg.ID, models.StatusApproved, "mod")
	require.NoError(t, err)
	assert.True(t, second.DisplayUntil.After(*first.DisplayUntil))
	assert.Equal(t, clock.Now().Add(DefaultDisplayDuration), *second.DisplayUntil)
}

func TestTransition_StatusWindowInvariant(t *testing.T) {
	svc, _ := newTestService(t)
	msg := mustSubmit(t, svc, "auguri!")

	// approved <=> display window present, in both directions, at every step
	for _, target := range []models.Status{
		models.StatusApproved,
		models.StatusRejected,
		models.StatusApproved,
		models.StatusPending,
	} {
		got, err := svc.Transition(context.Background(), msg.ID, target, "mod")
		require.NoError(t, err)
		if got.Status == models.StatusApproved {
			assert.NotNil(t, got.DisplayUntil)
		} else {
			assert.Nil(t, got.DisplayUntil)
		}
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)
	msg := mustSubmit(t, svc, "auguri!")

	_, err := svc.Transition(context.Background(), msg.ID, models.Status("banana"), "mod")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// expired is informational only: never an authored transition
	_, err = svc.Transition(context.Background(), msg.ID, models.StatusExpired, "mod")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// stored state untouched
	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.StatusPending, all[0].Status)
}

func TestTransition_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Transition(context.Background(), 4242, models.StatusApproved, "mod")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestListDisplayable_WindowBoundaries(t *testing.T) {
	svc, clock := newTestService(t)
	msg := mustSubmit(t, svc, "auguri!")

	approvedAt := clock.Now()
	_, err := svc.Transition(context.Background(), msg.ID, models.StatusApproved, "mod")
	require.NoError(t, err)

	// one second before expiry: present
	list, err := svc.ListDisplayable(context.Background(), approvedAt.Add(DefaultDisplayDuration-time.Second))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, msg.ID, list[0].ID)

	// one second after expiry: absent, with no write involved
	list, err = svc.ListDisplayable(context.Background(), approvedAt.Add(DefaultDisplayDuration+time.Second))
	require.NoError(t, err)
	assert.Empty(t, list)

	// exactly at expiry: absent (strict comparison)
	list, err = svc.ListDisplayable(context.Background(), approvedAt.Add(DefaultDisplayDuration))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListDisplayable_RejectedDisappearsRegardlessOfWindow(t *testing.T) {
	svc, clock := newTestService(t)
	msg := mustSubmit(t, svc, "auguri!")

	_, err := svc.Transition(context.Background(), msg.ID, models.StatusApproved, "mod")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), msg.ID, models.StatusRejected, "mod")
	require.NoError(t, err)

	list, err := svc.ListDisplayable(context.Background(), clock.Now())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListDisplayable_OrderedSoonestToExpireFirst(t *testing.T) {
	svc, clock := newTestService(t)

	first := mustSubmit(t, svc, "primo")
	second := mustSubmit(t, svc, "secondo")

	_, err := svc.Transition(context.Background(), first.ID, models.StatusApproved, "mod")
	require.NoError(t, err)
	clock.Advance(10 * time.Second)
	_, err = svc.Transition(context.Background(), second.ID, models.StatusApproved, "mod")
	require.NoError(t, err)

	list, err := svc.ListDisplayable(context.Background(), clock.Now())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID, "message closest to leaving comes first")
	assert.Equal(t, second.ID, list[1].ID)
}

func TestListAll_MostRecentFirst(t *testing.T) {
	svc, _ := newTestService(t)

	a := mustSubmit(t, svc, "primo")
	b := mustSubmit(t, svc, "secondo")

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)
	assert.Equal(t, a.ID, all[1].ID)
}

func TestPendingCount(t *testing.T) {
	svc, _ := newTestService(t)

	mustSubmit(t, svc, "uno")
	msg := mustSubmit(t, svc, "due")

	count, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = svc.Transition(context.Background(), msg.ID, models.StatusApproved, "mod")
	require.NoError(t, err)

	count, err = svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEvents_SubmitAndTransitionPublish(t *testing.T) {
	svc, _ := newTestService(t)

	ch, unsub, err := svc.Subscribe()
	require.NoError(t, err)
	defer unsub()

	msg := mustSubmit(t, svc, "auguri!")

	ev := <-ch
	assert.Equal(t, models.EventInsert, ev.Type)
	assert.Nil(t, ev.Old)
	assert.Equal(t, msg.ID, ev.New.ID)

	_, err = svc.Transition(context.Background(), msg.ID, models.StatusApproved, "mod")
	require.NoError(t, err)

	ev = <-ch
	assert.Equal(t, models.EventUpdate, ev.Type)
	require.NotNil(t, ev.Old)
	assert.Equal(t, models.StatusPending, ev.Old.Status)
	assert.Equal(t, models.StatusApproved, ev.New.Status)
	assert.NotNil(t, ev.New.DisplayUntil)
}

func mustSubmit(t *testing.T, svc *Service, text string) *models.Message {
	t.Helper()
	msg, err := svc.Submit(context.Background(), text)
	require.NoError(t, err)
	return msg
}
