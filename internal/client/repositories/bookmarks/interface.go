package bookmarks

import "context"

// Repository is the local-only star store: a session id is present when the
// user has starred it. Entries survive remote deletion of the session itself,
// so a session that disappears and later returns comes back starred.
type Repository interface {
	// Add stars a session. Adding an existing bookmark is a no-op.
	Add(ctx context.Context, sessionID string) error

	// Remove unstars a session. Removing a missing bookmark is a no-op.
	Remove(ctx context.Context, sessionID string) error

	// Exists reports whether a session is starred.
	Exists(ctx context.Context, sessionID string) (bool, error)

	// All returns every starred session id.
	All(ctx context.Context) ([]string, error)

	// Count returns the number of starred sessions.
	Count(ctx context.Context) (int, error)
}
