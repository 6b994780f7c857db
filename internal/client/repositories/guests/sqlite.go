package guests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/confsync/confsync/internal/client/models"
	"github.com/confsync/confsync/internal/common"
	"github.com/confsync/confsync/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const guestColumns = `category, id, first_name, last_name, bio, photo_url, hires_photo_url, guest_of_honor, photo`

// Upsert inserts or updates a guest by (category, id). On conflict every
// remote field is updated; the cached photo bytes keep their stored value.
func (r *SQLiteRepository) Upsert(ctx context.Context, g *models.Guest) error {
	query := `INSERT INTO guests (` + guestColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(category, id) DO UPDATE SET first_name = excluded.first_name,
				last_name = excluded.last_name,
				bio = excluded.bio,
				photo_url = excluded.photo_url,
				hires_photo_url = excluded.hires_photo_url,
				guest_of_honor = excluded.guest_of_honor
	`
	_, err := r.db.ExecContext(ctx, query,
		g.Category, g.ID, g.FirstName, g.LastName, g.Bio,
		g.PhotoURL, g.HiResPhotoURL, g.GuestOfHonor, g.Photo)
	if err != nil {
		return fmt.Errorf("failed to upsert guest: %w", err)
	}
	return nil
}

// GetByKey returns a single guest.
func (r *SQLiteRepository) GetByKey(ctx context.Context, key models.GuestKey) (*models.Guest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE category = ? AND id = ?`, key.Category, key.ID)
	g, err := scanGuest(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("guest %s/%s: %w", key.Category, key.ID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return g, nil
}

// GetAll lists every guest ordered by category, then name.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Guest, error) {
	return r.list(ctx, `SELECT `+guestColumns+` FROM guests ORDER BY category, last_name, first_name, id`)
}

// GetByCategory lists one category's guests ordered by name.
func (r *SQLiteRepository) GetByCategory(ctx context.Context, category string) ([]models.Guest, error) {
	return r.list(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE category = ? ORDER BY last_name, first_name, id`, category)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Guest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select guests: %w", err)
	}
	defer rows.Close()

	var result []models.Guest
	for rows.Next() {
		g, err := scanGuest(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Keys returns the (category, id) pair of every stored guest.
func (r *SQLiteRepository) Keys(ctx context.Context) ([]models.GuestKey, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, id FROM guests`)
	if err != nil {
		return nil, fmt.Errorf("failed to select guest keys: %w", err)
	}
	defer rows.Close()

	var keys []models.GuestKey
	for rows.Next() {
		var k models.GuestKey
		if err := rows.Scan(&k.Category, &k.ID); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// DeleteByKeys removes the given guests. An empty slice is a no-op.
func (r *SQLiteRepository) DeleteByKeys(ctx context.Context, keys []models.GuestKey) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("(?, ?),", len(keys)), ",")
	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k.Category, k.ID)
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM guests WHERE (category, id) IN (VALUES `+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to delete guests: %w", err)
	}
	return nil
}

// SetPhoto stores cached photo bytes for a guest. It expects the guest to exist.
func (r *SQLiteRepository) SetPhoto(ctx context.Context, key models.GuestKey, photo []byte) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE guests SET photo = ? WHERE category = ? AND id = ?`, photo, key.Category, key.ID)
	if err != nil {
		return fmt.Errorf("failed to set photo: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("guest %s/%s: %w", key.Category, key.ID, common.ErrNotFound)
	}
	return nil
}

func scanGuest(scan func(dest ...any) error) (*models.Guest, error) {
	var g models.Guest
	if err := scan(&g.Category, &g.ID, &g.FirstName, &g.LastName, &g.Bio,
		&g.PhotoURL, &g.HiResPhotoURL, &g.GuestOfHonor, &g.Photo); err != nil {
		return nil, err
	}
	return &g, nil
}
