package guests

import (
	"context"
	"database/sql"
	"testing"

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
CREATE TABLE guests (
  category TEXT NOT NULL,
  id TEXT NOT NULL,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  bio TEXT NOT NULL DEFAULT '',
  photo_url TEXT NOT NULL DEFAULT '',
  hires_photo_url TEXT NOT NULL DEFAULT '',
  guest_of_honor INTEGER NOT NULL DEFAULT 0,
  photo BLOB,
  PRIMARY KEY (category, id)
);
`)
	require.NoError(t, err)

	return db
}

func TestUpsert_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	g := &models.Guest{
		ID:        "1",
		Category:  "Voice Actors",
		FirstName: "Jane",
		LastName:  "Doe",
		PhotoURL:  "http://img.example.com/1.jpg",
	}
	require.NoError(t, r.Upsert(ctx, g))

	got, err := r.GetByKey(ctx, g.Key())
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)

	// update by the same key
	g2 := &models.Guest{ID: "1", Category: "Voice Actors", FirstName: "Janet", LastName: "Doe"}
	require.NoError(t, r.Upsert(ctx, g2))

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 1, "upsert must not duplicate records")

	got, err = r.GetByKey(ctx, g.Key())
	require.NoError(t, err)
	assert.Equal(t, "Janet", got.FirstName)
}

func TestUpsert_SameIDDifferentCategoryAreDistinct(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Guest{ID: "1", Category: "Voice Actors", FirstName: "Jane"}))
	require.NoError(t, r.Upsert(ctx, &models.Guest{ID: "1", Category: "Artists", FirstName: "Niko"}))

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 2, "legacy ids are only unique within a category")
}

func TestUpsert_UpdatePreservesPhoto(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	g := &models.Guest{ID: "1", Category: "Artists", FirstName: "Niko"}
	require.NoError(t, r.Upsert(ctx, g))
	require.NoError(t, r.SetPhoto(ctx, g.Key(), []byte{0x89, 0x50}))

	require.NoError(t, r.Upsert(ctx, &models.Guest{ID: "1", Category: "Artists", FirstName: "Nikolai"}))

	got, err := r.GetByKey(ctx, g.Key())
	require.NoError(t, err)
	assert.Equal(t, "Nikolai", got.FirstName)
	assert.Equal(t, []byte{0x89, 0x50}, got.Photo, "sync update must keep cached photo bytes")
}

func TestGetByCategory_Ordering(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Guest{ID: "2", Category: "Artists", FirstName: "Zoe", LastName: "Young"}))
	require.NoError(t, r.Upsert(ctx, &models.Guest{ID: "1", Category: "Artists", FirstName: "Ann", LastName: "Baker"}))
	require.NoError(t, r.Upsert(ctx, &models.Guest{ID: "3", Category: "Voice Actors", FirstName: "Jane", LastName: "Doe"}))

	got, err := r.GetByCategory(ctx, "Artists")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Baker", got[0].LastName)
	assert.Equal(t, "Young", got[1].LastName)
}

func TestDeleteByKeys(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Guest{ID: "1", Category: "Artists"}))
	require.NoError(t, r.Upsert(ctx, &models.Guest{ID: "1", Category: "Voice Actors"}))
	require.NoError(t, r.Upsert(ctx, &models.Guest{ID: "2", Category: "Voice Actors"}))

	require.NoError(t, r.DeleteByKeys(ctx, []models.GuestKey{{Category: "Voice Actors", ID: "1"}}))

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.GuestKey{
		{Category: "Artists", ID: "1"},
		{Category: "Voice Actors", ID: "2"},
	}, keys)

	require.NoError(t, r.DeleteByKeys(ctx, nil))
	keys, err = r.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestSetPhoto_UnknownGuest(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.SetPhoto(context.Background(), models.GuestKey{Category: "Artists", ID: "404"}, []byte{1})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
