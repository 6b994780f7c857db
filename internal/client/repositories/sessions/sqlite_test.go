package sessions

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confsync/confsync/internal/client/models"
	"github.com/confsync/confsync/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE sessions (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  room TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  banner_url TEXT NOT NULL DEFAULT '',
  start_at INTEGER,
  end_at INTEGER,
  capacity INTEGER NOT NULL DEFAULT 0,
  tags TEXT NOT NULL DEFAULT '[]',
  speaker_ids TEXT NOT NULL DEFAULT '[]',
  starred INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	return db
}

func ts(h, m int) *time.Time {
	t := time.Date(2016, 4, 22, h, m, 0, 0, time.UTC)
	return &t
}

func TestUpsert_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	s1 := &models.Session{
		ID:         "s1",
		Name:       "Opening",
		Category:   "Main Events",
		Room:       "Main Hall",
		Start:      ts(9, 0),
		End:        ts(10, 0),
		Tags:       []string{"opening"},
		SpeakerIDs: []string{"g1"},
	}
	require.NoError(t, r.Upsert(ctx, s1))

	got, err := r.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Opening", got.Name)
	assert.Equal(t, "Main Hall", got.Room)
	require.NotNil(t, got.Start)
	assert.True(t, got.Start.Equal(*ts(9, 0)))
	assert.Equal(t, []string{"opening"}, got.Tags)
	assert.Equal(t, []string{"g1"}, got.SpeakerIDs)
	assert.False(t, got.Starred)

	// update by the same id: one record, fresh values
	s1b := &models.Session{ID: "s1", Name: "Opening Ceremony", Room: "Panel 1"}
	require.NoError(t, r.Upsert(ctx, s1b))

	ids, err := r.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids, "upsert must not duplicate records")

	got, err = r.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Opening Ceremony", got.Name)
	assert.Equal(t, "Panel 1", got.Room)
}

func TestUpsert_UpdateDoesNotTouchStarred(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Session{ID: "s1", Name: "Opening"}))
	require.NoError(t, r.SetStarred(ctx, "s1", true))

	// remote update arrives with starred unset
	require.NoError(t, r.Upsert(ctx, &models.Session{ID: "s1", Name: "Opening v2"}))

	got, err := r.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Opening v2", got.Name)
	assert.True(t, got.Starred, "sync update must preserve the star flag")
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetAll_OrderedByStartUnscheduledLast(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Session{ID: "late", Name: "Late", Start: ts(11, 0)}))
	require.NoError(t, r.Upsert(ctx, &models.Session{ID: "tba", Name: "TBA"}))
	require.NoError(t, r.Upsert(ctx, &models.Session{ID: "early", Name: "Early", Start: ts(9, 0)}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
	assert.Equal(t, "tba", got[2].ID, "unscheduled sessions sort last")
	assert.Nil(t, got[2].Start)
}

func TestDeleteByIDs(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Upsert(ctx, &models.Session{ID: id}))
	}

	require.NoError(t, r.DeleteByIDs(ctx, []string{"b"}))

	ids, err := r.IDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, ids)

	// empty slice is a no-op
	require.NoError(t, r.DeleteByIDs(ctx, nil))
	ids, err = r.IDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestSetStarred_UnknownSession(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.SetStarred(context.Background(), "missing", true)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
