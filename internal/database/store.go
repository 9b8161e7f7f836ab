// Package database defines the persistence boundary for wall messages.
// Two backends implement it: sqlitestore for deployments and memstore as an
// in-memory variant for tests and throwaway setups. The backend is selected
// explicitly at process startup, never discovered dynamically.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/lucmas92/message-wall/internal/models"
)

// ErrNotFound is returned when an operation references a message id that
// does not exist.
var ErrNotFound = errors.New("message not found")

// Store is the contract every message backend must satisfy.
// Implementations must be safe for concurrent use. All methods accept a
// context for cancellation and timeouts; timeout policy belongs to callers.
type Store interface {
	// CreateMessage persists a new pending message and returns it with
	// the store-assigned id. Ids are totally ordered by creation.
	CreateMessage(ctx context.Context, text string, createdAt time.Time) (*models.Message, error)

	// GetMessage returns the message with the given id, or ErrNotFound.
	GetMessage(ctx context.Context, id int64) (*models.Message, error)

	// ListMessages returns every message, most recent first (id desc).
	ListMessages(ctx context.Context) ([]*models.Message, error)

	// ListMessagesByStatus returns messages in the given status, most
	// recent first (id desc).
	ListMessagesByStatus(ctx context.Context, status models.Status) ([]*models.Message, error)

	// UpdateMessageStatus writes status and displayUntil together in one
	// atomic update and returns the resulting row, or ErrNotFound.
	//
	// Updates are unconditional, keyed by id: there is no version check,
	// so callers racing on the same id get last-write-wins. Serializing
	// transitions per message id is a caller responsibility.
	UpdateMessageStatus(ctx context.Context, id int64, status models.Status, displayUntil *time.Time) (*models.Message, error)

	// CountMessages returns how many messages are in the given status.
	CountMessages(ctx context.Context, status models.Status) (int, error)

	// Close releases the underlying resources.
	Close() error
}
