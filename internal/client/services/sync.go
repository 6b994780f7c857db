// Package services holds the session/guest sync engine and the schedule
// projection consumed by the UI layer.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/confsync/confsync/internal/client/api"
	"github.com/confsync/confsync/internal/client/mapping"
	"github.com/confsync/confsync/internal/client/models"
	"github.com/confsync/confsync/internal/client/repositories/bookmarks"
	"github.com/confsync/confsync/internal/client/repositories/guests"
	"github.com/confsync/confsync/internal/client/repositories/sessions"
	"github.com/confsync/confsync/internal/common"
	"github.com/confsync/confsync/internal/dbx"
	"github.com/confsync/confsync/internal/logging"
)

// Fetcher is the part of the API client the sync service needs.
type Fetcher interface {
	FetchJSON(ctx context.Context, ep api.Endpoint) (any, error)
}

// ChangeSet describes what one committed reconcile pass did to the cache.
// For guests the ids are "category/id" pairs.
type ChangeSet struct {
	Entity   string
	Inserted []string
	Updated  []string
	Deleted  []string
}

func (c ChangeSet) Empty() bool {
	return len(c.Inserted) == 0 && len(c.Updated) == 0 && len(c.Deleted) == 0
}

// CacheObserver is notified after a reconcile pass commits.
type CacheObserver interface {
	CacheUpdated(change ChangeSet)
}

// SyncService fetches remote batches and reconciles them into the local
// cache: upsert by id, then delete whatever the fresh batch no longer
// contains. Every pass runs inside a single transaction, and passes against
// the same service are serialized so concurrent sync triggers queue up
// instead of interleaving.
type SyncService struct {
	fetcher Fetcher
	db      *sql.DB
	dates   *mapping.DateParser
	family  string
	log     logging.Logger

	mu sync.Mutex

	obsMu     sync.Mutex
	observers []CacheObserver
}

func NewSyncService(fetcher Fetcher, db *sql.DB, dates *mapping.DateParser, family string, log logging.Logger) *SyncService {
	return &SyncService{fetcher: fetcher, db: db, dates: dates, family: family, log: log}
}

// Subscribe registers an observer for committed changes.
func (s *SyncService) Subscribe(o CacheObserver) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *SyncService) notify(change ChangeSet) {
	if change.Empty() {
		return
	}
	s.obsMu.Lock()
	obs := make([]CacheObserver, len(s.observers))
	copy(obs, s.observers)
	s.obsMu.Unlock()

	for _, o := range obs {
		o.CacheUpdated(change)
	}
}

// SyncSessions runs one full session sync cycle: fetch, map, reconcile.
// A fetch or decode failure aborts the cycle with the cache untouched.
func (s *SyncService) SyncSessions(ctx context.Context) (ChangeSet, error) {
	v, err := s.fetcher.FetchJSON(ctx, api.SessionsEndpoint(s.family))
	if err != nil {
		s.log.Warn(ctx, "session sync aborted", "error", err)
		return ChangeSet{}, err
	}

	patches, err := mapping.SessionBatch(v, s.dates)
	if err != nil {
		err = fmt.Errorf("%w: %v", common.ErrDecode, err)
		s.log.Warn(ctx, "session sync aborted", "error", err)
		return ChangeSet{}, err
	}

	return s.ReconcileSessions(ctx, patches)
}

// ReconcileSessions applies a mapped batch to the cache. Records matching a
// fresh id are updated in place (star state preserved), unknown ids are
// inserted, and ids missing from the batch are deleted. The delete pass only
// runs for a non-empty batch, so an empty fetch can never wipe the cache.
func (s *SyncService) ReconcileSessions(ctx context.Context, patches []models.SessionPatch) (ChangeSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With("sync_id", uuid.NewString(), "entity", "session")
	change := ChangeSet{Entity: "session"}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessions.NewSQLiteRepository(tx)
		bm := bookmarks.NewSQLiteRepository(tx)

		existing, err := repo.IDs(ctx)
		if err != nil {
			return err
		}

		fresh := make(map[string]struct{}, len(patches))
		for i := range patches {
			p := &patches[i]
			logSkipped(ctx, log, p.ID, p.Skipped)

			cur, err := repo.GetByID(ctx, p.ID)
			switch {
			case errors.Is(err, common.ErrNotFound):
				cur = &models.Session{ID: p.ID}
				// a session that returns after deletion regains its star
				starred, err := bm.Exists(ctx, p.ID)
				if err != nil {
					return err
				}
				cur.Starred = starred
				change.Inserted = append(change.Inserted, p.ID)
			case err != nil:
				return err
			default:
				change.Updated = append(change.Updated, p.ID)
			}

			p.Apply(cur)
			if err := repo.Upsert(ctx, cur); err != nil {
				return err
			}
			fresh[p.ID] = struct{}{}
		}

		// delete-by-absence, but never on an empty batch
		if len(patches) > 0 {
			for _, id := range existing {
				if _, ok := fresh[id]; !ok {
					change.Deleted = append(change.Deleted, id)
				}
			}
			if err := repo.DeleteByIDs(ctx, change.Deleted); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, "reconcile failed, cache unchanged", "error", err)
		return ChangeSet{}, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	log.Info(ctx, "sessions reconciled",
		"inserted", len(change.Inserted), "updated", len(change.Updated), "deleted", len(change.Deleted))
	s.notify(change)
	return change, nil
}

// ApplyLiveSnapshot feeds one live-feed frame (the keyed session map) through
// the same mapper and reconcile path as a poll fetch.
func (s *SyncService) ApplyLiveSnapshot(ctx context.Context, v any) error {
	patches, err := mapping.SessionBatch(v, s.dates)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrDecode, err)
	}
	_, err = s.ReconcileSessions(ctx, patches)
	return err
}

// SyncGuests runs one full guest sync cycle. Guests get the same id-keyed
// upsert plus delete-by-absence discipline as sessions, keyed by
// (category, id).
func (s *SyncService) SyncGuests(ctx context.Context) (ChangeSet, error) {
	v, err := s.fetcher.FetchJSON(ctx, api.EndpointGuestList)
	if err != nil {
		s.log.Warn(ctx, "guest sync aborted", "error", err)
		return ChangeSet{}, err
	}

	patches, err := mapping.GuestBatch(v)
	if err != nil {
		err = fmt.Errorf("%w: %v", common.ErrDecode, err)
		s.log.Warn(ctx, "guest sync aborted", "error", err)
		return ChangeSet{}, err
	}

	return s.ReconcileGuests(ctx, patches)
}

// ReconcileGuests applies a mapped guest batch to the cache, preserving
// locally cached photo bytes on update.
func (s *SyncService) ReconcileGuests(ctx context.Context, patches []models.GuestPatch) (ChangeSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With("sync_id", uuid.NewString(), "entity", "guest")
	change := ChangeSet{Entity: "guest"}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := guests.NewSQLiteRepository(tx)

		existing, err := repo.Keys(ctx)
		if err != nil {
			return err
		}

		fresh := make(map[models.GuestKey]struct{}, len(patches))
		for i := range patches {
			p := &patches[i]
			key := p.Key()
			logSkipped(ctx, log, key.Category+"/"+key.ID, p.Skipped)

			cur, err := repo.GetByKey(ctx, key)
			switch {
			case errors.Is(err, common.ErrNotFound):
				cur = &models.Guest{ID: p.ID, Category: p.Category}
				change.Inserted = append(change.Inserted, key.Category+"/"+key.ID)
			case err != nil:
				return err
			default:
				change.Updated = append(change.Updated, key.Category+"/"+key.ID)
			}

			p.Apply(cur)
			if err := repo.Upsert(ctx, cur); err != nil {
				return err
			}
			fresh[key] = struct{}{}
		}

		if len(patches) > 0 {
			var stale []models.GuestKey
			for _, key := range existing {
				if _, ok := fresh[key]; !ok {
					stale = append(stale, key)
					change.Deleted = append(change.Deleted, key.Category+"/"+key.ID)
				}
			}
			if err := repo.DeleteByKeys(ctx, stale); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error(ctx, "reconcile failed, cache unchanged", "error", err)
		return ChangeSet{}, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	log.Info(ctx, "guests reconciled",
		"inserted", len(change.Inserted), "updated", len(change.Updated), "deleted", len(change.Deleted))
	s.notify(change)
	return change, nil
}

func logSkipped(ctx context.Context, log logging.Logger, id string, skipped []models.SkippedField) {
	for _, d := range skipped {
		log.Debug(ctx, "field skipped", "id", id, "key", d.Key, "reason", d.Reason)
	}
}
