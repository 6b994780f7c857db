package guests

import (
	"context"

	"github.com/confsync/confsync/internal/client/models"
)

// Repository describes the guest-store operations used by reconciliation and
// the guest listing. Guests are keyed by (category, id) because legacy guest
// ids repeat across categories.
type Repository interface {
	// Upsert inserts a guest or updates an existing one by key. Cached
	// photo bytes are written on insert only; updates never touch them.
	Upsert(ctx context.Context, g *models.Guest) error

	// GetByKey returns a guest, or common.ErrNotFound.
	GetByKey(ctx context.Context, key models.GuestKey) (*models.Guest, error)

	// GetAll returns all guests ordered by category, then name.
	GetAll(ctx context.Context) ([]models.Guest, error)

	// GetByCategory returns the guests of one category ordered by name.
	GetByCategory(ctx context.Context, category string) ([]models.Guest, error)

	// Keys returns the key of every stored guest.
	Keys(ctx context.Context) ([]models.GuestKey, error)

	// DeleteByKeys removes the guests with the given keys.
	DeleteByKeys(ctx context.Context, keys []models.GuestKey) error

	// SetPhoto stores lazily fetched photo bytes for a guest.
	SetPhoto(ctx context.Context, key models.GuestKey, photo []byte) error
}
