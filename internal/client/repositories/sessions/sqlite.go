package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

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

const sessionColumns = `id, name, category, room, description, banner_url, start_at, end_at, capacity, tags, speaker_ids, starred`

// Upsert inserts or updates a session by id. On conflict every remote field
// is updated; starred keeps its stored value so sync cannot clobber it.
func (r *SQLiteRepository) Upsert(ctx context.Context, s *models.Session) error {
	query := `INSERT INTO sessions (` + sessionColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				category = excluded.category,
				room = excluded.room,
				description = excluded.description,
				banner_url = excluded.banner_url,
				start_at = excluded.start_at,
				end_at = excluded.end_at,
				capacity = excluded.capacity,
				tags = excluded.tags,
				speaker_ids = excluded.speaker_ids
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Category, s.Room, s.Description, s.BannerURL,
		encodeTime(s.Start), encodeTime(s.End), s.Capacity,
		encodeStrings(s.Tags), encodeStrings(s.SpeakerIDs), s.Starred)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

// GetByID returns a single session.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return s, nil
}

// GetAll lists all sessions ordered by start ascending, unscheduled last.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY start_at IS NULL, start_at, name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		s, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// IDs returns every stored session id.
func (r *SQLiteRepository) IDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("failed to select session ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByIDs removes the given sessions. An empty slice is a no-op.
func (r *SQLiteRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// SetStarred writes the local-only star flag. It expects the session to exist.
func (r *SQLiteRepository) SetStarred(ctx context.Context, id string, starred bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sessions SET starred = ? WHERE id = ?`, starred, id)
	if err != nil {
		return fmt.Errorf("failed to set starred: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("session %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func scanSession(scan func(dest ...any) error) (*models.Session, error) {
	var (
		s          models.Session
		start, end sql.NullInt64
		tags       string
		speakers   string
	)
	if err := scan(&s.ID, &s.Name, &s.Category, &s.Room, &s.Description, &s.BannerURL,
		&start, &end, &s.Capacity, &tags, &speakers, &s.Starred); err != nil {
		return nil, err
	}
	s.Start = decodeTime(start)
	s.End = decodeTime(end)
	var err error
	if s.Tags, err = decodeStrings(tags); err != nil {
		return nil, fmt.Errorf("bad tags column for %s: %w", s.ID, err)
	}
	if s.SpeakerIDs, err = decodeStrings(speakers); err != nil {
		return nil, fmt.Errorf("bad speaker_ids column for %s: %w", s.ID, err)
	}
	return &s, nil
}

// times are stored as unix seconds, NULL meaning unscheduled
func encodeTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func decodeTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}

// ordered string sequences are stored as JSON arrays
func encodeStrings(s []string) string {
	if len(s) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(s)
	return string(b)
}

func decodeStrings(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
