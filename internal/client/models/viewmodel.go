package models

import "time"

// SessionViewModel is an immutable, presentation-ready snapshot of a Session
// plus its star status. It is derived at projection time and never written
// back; toggling a star re-derives a fresh view model.
type SessionViewModel struct {
	SessionID   string
	Title       string
	Description string
	Category    string
	// Color is the hex color for Category, empty when the category has
	// no fixed color assigned.
	Color      string
	Room       string
	Start      *time.Time
	End        *time.Time
	SpeakerIDs []string
	Tags       []string
	IsStarred  bool
}

// NewSessionViewModel projects a Session and its star status into a view model.
func NewSessionViewModel(s *Session, starred bool) SessionViewModel {
	color, _ := CategoryColor(s.Category)
	return SessionViewModel{
		SessionID:   s.ID,
		Title:       s.Name,
		Description: s.Description,
		Category:    s.Category,
		Color:       color,
		Room:        s.Room,
		Start:       s.Start,
		End:         s.End,
		SpeakerIDs:  s.SpeakerIDs,
		Tags:        s.Tags,
		IsStarred:   starred,
	}
}
