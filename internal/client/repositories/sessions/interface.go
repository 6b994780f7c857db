package sessions

import (
	"context"

	"github.com/confsync/confsync/internal/client/models"
)

// Repository describes the session-store operations used by the
// reconciliation engine and the schedule projection.
type Repository interface {
	// Upsert inserts a session or updates an existing one by id. The
	// starred column is written on insert only; updates never touch it.
	Upsert(ctx context.Context, s *models.Session) error

	// GetByID returns a session by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Session, error)

	// GetAll returns all sessions ordered by start time ascending, with
	// unscheduled sessions (no start) last.
	GetAll(ctx context.Context) ([]models.Session, error)

	// IDs returns the ids of every stored session.
	IDs(ctx context.Context) ([]string, error)

	// DeleteByIDs removes the sessions with the given ids.
	DeleteByIDs(ctx context.Context, ids []string) error

	// SetStarred writes the local-only star flag.
	SetStarred(ctx context.Context, id string, starred bool) error
}
