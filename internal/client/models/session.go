// Package models defines the entities kept in the local schedule cache and
// the view models projected from them.
package models

import "time"

// Session is a single schedule entry persisted in the local cache.
//
// All remote fields are overwritten by sync; Starred is local-only state and
// is never touched by the reconciliation engine.
type Session struct {
	// ID is the stable external identifier; primary key for reconciliation.
	ID string

	Name        string
	Category    string
	Room        string
	Description string
	BannerURL   string

	// Start and End are nil for unscheduled sessions.
	Start *time.Time
	End   *time.Time

	// Capacity is the room capacity as reported by the legacy API
	// (a numeric string there); zero when unknown.
	Capacity int

	Tags       []string
	SpeakerIDs []string

	// Starred mirrors the bookmark store; mutated only by user action.
	Starred bool
}

// SessionPatch is a partial update produced by the mapper. Nil pointer and
// nil slice fields mean "leave the current value untouched".
type SessionPatch struct {
	ID string

	Name        *string
	Category    *string
	Room        *string
	Description *string
	BannerURL   *string
	Start       *time.Time
	End         *time.Time
	Capacity    *int
	Tags        []string
	SpeakerIDs  []string

	// Skipped lists fields that were present in the payload but could not
	// be decoded; they are reported, not applied.
	Skipped []SkippedField
}

// SkippedField is a per-field decode diagnostic emitted by the mapper.
type SkippedField struct {
	Key    string
	Reason string
}

// Apply copies every populated patch field onto s. Unpopulated fields leave
// the prior value in place, so a payload missing a key never nulls out
// previously-good data.
func (p *SessionPatch) Apply(s *Session) {
	if p.ID != "" {
		s.ID = p.ID
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Room != nil {
		s.Room = *p.Room
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.BannerURL != nil {
		s.BannerURL = *p.BannerURL
	}
	if p.Start != nil {
		s.Start = p.Start
	}
	if p.End != nil {
		s.End = p.End
	}
	if p.Capacity != nil {
		s.Capacity = *p.Capacity
	}
	if p.Tags != nil {
		s.Tags = p.Tags
	}
	if p.SpeakerIDs != nil {
		s.SpeakerIDs = p.SpeakerIDs
	}
}
