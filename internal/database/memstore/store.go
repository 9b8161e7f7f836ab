// Package memstore provides an in-memory implementation of database.Store.
// It backs tests and zero-setup deployments; nothing survives a restart.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lucmas92/message-wall/internal/database"
	"github.com/lucmas92/message-wall/internal/models"
)

// Store keeps messages in a mutex-guarded map. Ids are assigned from a
// monotonically increasing counter so creation order is total.
type Store struct {
	mu       sync.RWMutex
	messages map[int64]*models.Message
	nextID   int64
}

// Ensure Store implements the interface at compile time.
var _ database.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{messages: make(map[int64]*models.Message), nextID: 1}
}

func (s *Store) CreateMessage(_ context.Context, text string, createdAt time.Time) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := &models.Message{
		ID:        s.nextID,
		Text:      text,
		Status:    models.StatusPending,
		CreatedAt: createdAt,
	}
	s.nextID++
	s.messages[msg.ID] = msg
	return clone(msg), nil
}

func (s *Store) GetMessage(_ context.Context, id int64) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return clone(msg), nil
}

func (s *Store) ListMessages(_ context.Context) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		out = append(out, clone(msg))
	}
	sortByIDDesc(out)
	return out, nil
}

func (s *Store) ListMessagesByStatus(_ context.Context, status models.Status) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Message
	for _, msg := range s.messages {
		if msg.Status == status {
			out = append(out, clone(msg))
		}
	}
	sortByIDDesc(out)
	return out, nil
}

func (s *Store) UpdateMessageStatus(_ context.Context, id int64, status models.Status, displayUntil *time.Time) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	// both fields change under the same lock: no reader can observe an
	// approved message without its display window
	msg.Status = status
	msg.DisplayUntil = copyTime(displayUntil)
	return clone(msg), nil
}

func (s *Store) CountMessages(_ context.Context, status models.Status) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, msg := range s.messages {
		if msg.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *Store) Close() error { return nil }

// clone returns a copy so callers can never mutate stored state.
func clone(m *models.Message) *models.Message {
	c := *m
	c.DisplayUntil = copyTime(m.DisplayUntil)
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func sortByIDDesc(msgs []*models.Message) {
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].ID > msgs[j].ID })
}
