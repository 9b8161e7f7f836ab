// Package wall implements the message wall core: the submission path, the
// moderation state machine and the display selector. It owns every mutation
// of a message's status; storage and event transport stay behind interfaces.
package wall

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/lucmas92/message-wall/internal/database"
	"github.com/lucmas92/message-wall/internal/database/boltstore"
	"github.com/lucmas92/message-wall/internal/models"
	"github.com/lucmas92/message-wall/internal/notifier"
	"github.com/lucmas92/message-wall/internal/profanity"
)

// Defaults mirroring the production deployment.
const (
	DefaultDisplayDuration = 45 * time.Second
	DefaultMaxTextLength   = 280
)

// AuditLog records moderation actions. It is optional; a nil log disables
// auditing without touching the transition path.
type AuditLog interface {
	Append(entry boltstore.AuditEntry) error
}

// Service wires the wall together. Construct it with NewService; the zero
// value is not usable.
type Service struct {
	store   database.Store
	matcher *profanity.Matcher
	hub     *notifier.Hub
	audit   AuditLog

	displayDuration time.Duration
	maxTextLength   int
	now             func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithDisplayDuration overrides the approval display window.
func WithDisplayDuration(d time.Duration) Option {
	return func(s *Service) { s.displayDuration = d }
}

// WithMaxTextLength overrides the submission length limit (in runes).
func WithMaxTextLength(n int) Option {
	return func(s *Service) { s.maxTextLength = n }
}

// WithAuditLog enables audit logging of moderation transitions.
func WithAuditLog(a AuditLog) Option {
	return func(s *Service) { s.audit = a }
}

// WithClock replaces the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a wall service on the given store, matcher and hub.
func NewService(store database.Store, matcher *profanity.Matcher, hub *notifier.Hub, opts ...Option) *Service {
	s := &Service{
		store:           store,
		matcher:         matcher,
		hub:             hub,
		displayDuration: DefaultDisplayDuration,
		maxTextLength:   DefaultMaxTextLength,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and screens text, persists it as pending and publishes an
// insert event. Validation and screening run before any store access, so a
// rejected submission never touches persistence.
func (s *Service) Submit(ctx context.Context, text string) (*models.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(trimmed) > s.maxTextLength {
		return nil, ErrTextTooLong
	}
	if s.matcher.IsProfane(trimmed) {
		return nil, ErrProfanity
	}

	msg, err := s.store.CreateMessage(ctx, trimmed, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("submit message: %w", err)
	}

	log.Info().Int64("id", msg.ID).Msg("wall: message submitted")
	s.hub.Publish(models.Event{Type: models.EventInsert, New: msg})
	return msg, nil
}

// Transition applies a moderation decision to the message with the given id.
//
// Target statuses and their side effects:
//
//	approved  -> display_until = now + display duration (re-approving an
//	             already approved message refreshes the window)
//	rejected  -> display_until cleared
//	pending   -> display_until cleared
//
// "expired" is not an authorable target and any unknown value fails with
// ErrInvalidStatus before stored state is touched. A missing id fails with
// database.ErrNotFound. Status and display_until are written atomically.
func (s *Service) Transition(ctx context.Context, id int64, target models.Status, actor string) (*models.Message, error) {
	var displayUntil *time.Time
	switch target {
	case models.StatusApproved:
		until := s.now().UTC().Add(s.displayDuration)
		displayUntil = &until
	case models.StatusPending, models.StatusRejected:
		// window cleared on any transition away from approved
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	before, err := s.store.GetMessage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("transition message %d: %w", id, err)
	}

	updated, err := s.store.UpdateMessageStatus(ctx, id, target, displayUntil)
	if err != nil {
		return nil, fmt.Errorf("transition message %d: %w", id, err)
	}

	log.Info().
		Int64("id", id).
		Str("from", string(before.Status)).
		Str("to", string(target)).
		Str("actor", actor).
		Msg("wall: message transitioned")

	if s.audit != nil {
		entry := boltstore.AuditEntry{
			Actor:     actor,
			MessageID: id,
			From:      before.Status,
			To:        target,
			Timestamp: s.now().UTC(),
		}
		if err := s.audit.Append(entry); err != nil {
			log.Error().Err(err).Int64("id", id).Msg("wall: audit append failed")
		}
	}

	s.hub.Publish(models.Event{Type: models.EventUpdate, Old: before, New: updated})
	return updated, nil
}

// ListAll returns every message, most recent first, for the moderation panel.
func (s *Service) ListAll(ctx context.Context) ([]*models.Message, error) {
	return s.store.ListMessages(ctx)
}

// ListDisplayable returns the approved messages still inside their display
// window at now, ordered soonest-to-expire first (ties broken by id). Expiry
// is a read-time predicate: nothing is written, so the result is always
// consistent with the clock reading passed in.
func (s *Service) ListDisplayable(ctx context.Context, now time.Time) ([]*models.Message, error) {
	approved, err := s.store.ListMessagesByStatus(ctx, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list displayable: %w", err)
	}

	displayable := approved[:0]
	for _, msg := range approved {
		if msg.Displayable(now) {
			displayable = append(displayable, msg)
		}
	}
	sort.Slice(displayable, func(i, j int) bool {
		a, b := displayable[i], displayable[j]
		if !a.DisplayUntil.Equal(*b.DisplayUntil) {
			return a.DisplayUntil.Before(*b.DisplayUntil)
		}
		return a.ID < b.ID
	})
	return displayable, nil
}

// PendingCount returns the moderation queue depth.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	return s.store.CountMessages(ctx, models.StatusPending)
}

// Subscribe registers a consumer on the change feed. See notifier.Hub.
func (s *Service) Subscribe() (<-chan models.Event, func(), error) {
	return s.hub.Subscribe()
}
