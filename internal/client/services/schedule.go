package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/confsync/confsync/internal/client/models"
	"github.com/confsync/confsync/internal/client/repositories/bookmarks"
	"github.com/confsync/confsync/internal/client/repositories/sessions"
	"github.com/confsync/confsync/internal/common"
	"github.com/confsync/confsync/internal/dbx"
	"github.com/confsync/confsync/internal/logging"
)

// Section is one group of the schedule: the view models sharing a start
// time, in name order. Start is nil for the trailing "unscheduled" section.
type Section struct {
	Start *time.Time
	Items []models.SessionViewModel
}

// ScheduleObserver receives projection updates. DataSourceUpdated fires
// after a data reload or a filter change; filtering distinguishes the two.
// StarredCountChanged fires after a star toggle so badge counts can recount.
type ScheduleObserver interface {
	DataSourceUpdated(filtering bool)
	StarredCountChanged(count int)
}

// ScheduleService projects cached sessions into immutable view models,
// grouped by start time and optionally narrowed by a text filter, and owns
// the star-toggle path.
type ScheduleService struct {
	db          *sql.DB
	sessionRepo sessions.Repository
	bmRepo      bookmarks.Repository
	log         logging.Logger

	// starMu serializes star mutations so a toggle reads and writes the
	// bookmark store without interleaving with another toggle
	starMu sync.Mutex

	mu       sync.RWMutex
	base     []models.SessionViewModel
	filter   string
	filtered []models.SessionViewModel
	sections []Section

	obsMu     sync.Mutex
	observers []ScheduleObserver
}

func NewScheduleService(db *sql.DB, sessionRepo sessions.Repository, bmRepo bookmarks.Repository, log logging.Logger) *ScheduleService {
	return &ScheduleService{db: db, sessionRepo: sessionRepo, bmRepo: bmRepo, log: log}
}

// Subscribe registers an observer for projection updates.
func (s *ScheduleService) Subscribe(o ScheduleObserver) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *ScheduleService) eachObserver(fn func(o ScheduleObserver)) {
	s.obsMu.Lock()
	obs := make([]ScheduleObserver, len(s.observers))
	copy(obs, s.observers)
	s.obsMu.Unlock()
	for _, o := range obs {
		fn(o)
	}
}

// CacheUpdated makes the schedule a CacheObserver: a committed session
// reconcile triggers a reprojection.
func (s *ScheduleService) CacheUpdated(change ChangeSet) {
	if change.Entity != "session" || change.Empty() {
		return
	}
	if err := s.Reload(context.Background()); err != nil {
		s.log.Error(context.Background(), "schedule reload failed", "error", err)
	}
}

// Reload reprojects the whole schedule from the cache and reapplies the
// current filter.
func (s *ScheduleService) Reload(ctx context.Context) error {
	all, err := s.sessionRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}
	starredIDs, err := s.bmRepo.All(ctx)
	if err != nil {
		return fmt.Errorf("loading bookmarks: %w", err)
	}
	starred := make(map[string]bool, len(starredIDs))
	for _, id := range starredIDs {
		starred[id] = true
	}

	s.mu.Lock()
	s.base = Project(all, starred)
	if s.filter == "" {
		s.filtered = nil
		s.sections = GroupByStart(s.base)
	} else {
		s.filtered = FilterViewModels(s.base, s.filter)
		s.sections = GroupByStart(s.filtered)
	}
	s.mu.Unlock()

	s.eachObserver(func(o ScheduleObserver) { o.DataSourceUpdated(false) })
	return nil
}

// SetFilter narrows the schedule to sessions matching query. When the new
// query is a refinement of the previous one (the old query appears in the
// new one), only the previous result set is re-scanned; the result is
// identical either way.
func (s *ScheduleService) SetFilter(query string) {
	s.mu.Lock()
	switch {
	case query == "":
		s.filtered = nil
		s.sections = GroupByStart(s.base)
	default:
		source := s.base
		if s.filter != "" && s.filtered != nil &&
			strings.Contains(strings.ToLower(query), strings.ToLower(s.filter)) {
			source = s.filtered
		}
		s.filtered = FilterViewModels(source, query)
		s.sections = GroupByStart(s.filtered)
	}
	s.filter = query
	s.mu.Unlock()

	s.eachObserver(func(o ScheduleObserver) { o.DataSourceUpdated(true) })
}

// Filter returns the active filter query.
func (s *ScheduleService) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Sections returns a snapshot of the current grouping. The items are copied,
// so a snapshot held across a star toggle or reload does not change.
func (s *ScheduleService) Sections() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Section, len(s.sections))
	for i, sec := range s.sections {
		items := make([]models.SessionViewModel, len(sec.Items))
		copy(items, sec.Items)
		out[i] = Section{Start: sec.Start, Items: items}
	}
	return out
}

// NumSections returns the number of sections in the current grouping.
func (s *ScheduleService) NumSections() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sections)
}

// NumItems returns the number of view models in one section.
func (s *ScheduleService) NumItems(section int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if section < 0 || section >= len(s.sections) {
		return 0
	}
	return len(s.sections[section].Items)
}

// ViewModel returns the view model at a section/item position.
func (s *ScheduleService) ViewModel(section, item int) (models.SessionViewModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if section < 0 || section >= len(s.sections) {
		return models.SessionViewModel{}, fmt.Errorf("section %d: %w", section, common.ErrNotFound)
	}
	items := s.sections[section].Items
	if item < 0 || item >= len(items) {
		return models.SessionViewModel{}, fmt.Errorf("item %d in section %d: %w", item, section, common.ErrNotFound)
	}
	return items[item], nil
}

// IndexPathOfSession locates a session id in the current grouping.
func (s *ScheduleService) IndexPathOfSession(id string) (section, item int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for si, sec := range s.sections {
		for ii, vm := range sec.Items {
			if vm.SessionID == id {
				return si, ii, true
			}
		}
	}
	return 0, 0, false
}

// ToggleStar flips the persisted star state of a session and returns the
// freshly projected view model. Two toggles return to the original state.
func (s *ScheduleService) ToggleStar(ctx context.Context, id string) (models.SessionViewModel, error) {
	s.starMu.Lock()
	defer s.starMu.Unlock()

	starred, err := s.bmRepo.Exists(ctx, id)
	if err != nil {
		return models.SessionViewModel{}, err
	}
	return s.setStar(ctx, id, !starred)
}

// StarSession stars a session; starring an already-starred session is a no-op.
func (s *ScheduleService) StarSession(ctx context.Context, id string) error {
	s.starMu.Lock()
	defer s.starMu.Unlock()
	_, err := s.setStar(ctx, id, true)
	return err
}

// UnstarSession unstars a session; unstarring an unstarred session is a no-op.
func (s *ScheduleService) UnstarSession(ctx context.Context, id string) error {
	s.starMu.Lock()
	defer s.starMu.Unlock()
	_, err := s.setStar(ctx, id, false)
	return err
}

func (s *ScheduleService) setStar(ctx context.Context, id string, want bool) (models.SessionViewModel, error) {
	var session *models.Session

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := sessions.NewSQLiteRepository(tx)
		bm := bookmarks.NewSQLiteRepository(tx)

		cur, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if want {
			if err := bm.Add(ctx, id); err != nil {
				return err
			}
		} else {
			if err := bm.Remove(ctx, id); err != nil {
				return err
			}
		}
		if cur.Starred != want {
			if err := repo.SetStarred(ctx, id, want); err != nil {
				return err
			}
			cur.Starred = want
		}
		session = cur
		return nil
	})
	if err != nil {
		return models.SessionViewModel{}, err
	}

	vm := models.NewSessionViewModel(session, want)
	s.applyStarLocked(id, want)

	count, err := s.bmRepo.Count(ctx)
	if err != nil {
		s.log.Warn(ctx, "starred recount failed", "error", err)
	} else {
		s.eachObserver(func(o ScheduleObserver) { o.StarredCountChanged(count) })
	}
	return vm, nil
}

// applyStarLocked updates the in-memory projection after a star write so the
// UI sees the new state without a full reload.
func (s *ScheduleService) applyStarLocked(id string, starred bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.base {
		if s.base[i].SessionID == id {
			s.base[i].IsStarred = starred
		}
	}
	for i := range s.filtered {
		if s.filtered[i].SessionID == id {
			s.filtered[i].IsStarred = starred
		}
	}
	for si := range s.sections {
		for ii := range s.sections[si].Items {
			if s.sections[si].Items[ii].SessionID == id {
				s.sections[si].Items[ii].IsStarred = starred
			}
		}
	}
}

// StarredCount returns the number of starred sessions.
func (s *ScheduleService) StarredCount(ctx context.Context) (int, error) {
	return s.bmRepo.Count(ctx)
}

// FirstSection returns the index of the first timed section starting at or
// after t, or false when no section qualifies. Used for "jump to now".
func (s *ScheduleService) FirstSection(atOrAfter time.Time) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timed := s.timedPrefixLocked()
	idx := sort.Search(timed, func(i int) bool {
		return !s.sections[i].Start.Before(atOrAfter)
	})
	if idx == timed {
		return 0, false
	}
	return idx, true
}

// LastSection returns the index of the last timed section starting at or
// before t, or false when no section qualifies.
func (s *ScheduleService) LastSection(atOrBefore time.Time) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timed := s.timedPrefixLocked()
	// first section strictly after the bound; everything before it qualifies
	idx := sort.Search(timed, func(i int) bool {
		return s.sections[i].Start.After(atOrBefore)
	})
	if idx == 0 {
		return 0, false
	}
	return idx - 1, true
}

// timedPrefixLocked returns how many leading sections carry a start time;
// the unscheduled section, when present, is always last.
func (s *ScheduleService) timedPrefixLocked() int {
	n := len(s.sections)
	if n > 0 && s.sections[n-1].Start == nil {
		n--
	}
	return n
}

// Project derives one immutable view model per session, in input order,
// looking star status up from the given set.
func Project(all []models.Session, starred map[string]bool) []models.SessionViewModel {
	out := make([]models.SessionViewModel, 0, len(all))
	for i := range all {
		s := &all[i]
		out = append(out, models.NewSessionViewModel(s, starred[s.ID]))
	}
	return out
}

// GroupByStart groups view models into sections by start timestamp, ordered
// ascending, with sessions lacking a start time in a trailing unscheduled
// section. Items within a section are ordered by title, then id.
func GroupByStart(vms []models.SessionViewModel) []Section {
	sorted := make([]models.SessionViewModel, len(vms))
	copy(sorted, vms)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Start, sorted[j].Start
		switch {
		case a == nil && b == nil:
			return lessByTitle(sorted[i], sorted[j])
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return lessByTitle(sorted[i], sorted[j])
		default:
			return a.Before(*b)
		}
	})

	var sections []Section
	for _, vm := range sorted {
		n := len(sections)
		if n > 0 && sameStart(sections[n-1].Start, vm.Start) {
			sections[n-1].Items = append(sections[n-1].Items, vm)
			continue
		}
		sections = append(sections, Section{Start: vm.Start, Items: []models.SessionViewModel{vm}})
	}
	return sections
}

func lessByTitle(a, b models.SessionViewModel) bool {
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.SessionID < b.SessionID
}

func sameStart(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// FilterViewModels returns the view models matching a case-insensitive
// substring query over title, category, room, and tags.
func FilterViewModels(vms []models.SessionViewModel, query string) []models.SessionViewModel {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return vms
	}
	var out []models.SessionViewModel
	for _, vm := range vms {
		if MatchesFilter(vm, q) {
			out = append(out, vm)
		}
	}
	return out
}

// MatchesFilter reports whether a view model matches an already-lowercased
// query.
func MatchesFilter(vm models.SessionViewModel, q string) bool {
	if strings.Contains(strings.ToLower(vm.Title), q) ||
		strings.Contains(strings.ToLower(vm.Category), q) ||
		strings.Contains(strings.ToLower(vm.Room), q) {
		return true
	}
	for _, tag := range vm.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
