package boltstore

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/lucmas92/message-wall/internal/models"
)

// AuditEntry records one moderation action on a message.
type AuditEntry struct {
	Actor     string        `json:"actor"` // token label of the moderator
	MessageID int64         `json:"message_id"`
	From      models.Status `json:"from"`
	To        models.Status `json:"to"`
	Timestamp time.Time     `json:"timestamp"`
}

// AuditStore persists the moderation audit trail in BoltDB.
type AuditStore struct {
	db *bolt.DB
}

// Append logs one entry. The key is the zero-padded nanosecond timestamp,
// so iteration order is chronological and a reverse cursor yields newest
// first.
func (s *AuditStore) Append(entry AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	// message id suffix disambiguates entries landing on the same nanosecond
	key := fmt.Sprintf("%019d:%d", entry.Timestamp.UnixNano(), entry.MessageID)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(BucketAuditLog).Put([]byte(key), data)
	})
}

// List returns up to limit entries, newest first. A non-positive limit
// returns everything.
func (s *AuditStore) List(limit int) ([]AuditEntry, error) {
	var entries []AuditEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(BucketAuditLog).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var e AuditEntry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
