// Package sessions provides the client-side persistence layer for schedule
// sessions.
//
// The package defines a Repository interface for the operations the
// reconciliation engine and the schedule projection need, and a SQLite-backed
// implementation (SQLiteRepository) over a dbx.DBTX (either *sql.DB or
// *sql.Tx). Reconciliation binds the repository to a transaction so a whole
// sync batch commits or rolls back as one unit.
//
// Remote fields are owned by sync; the starred column is local-only and is
// written exclusively through SetStarred.
package sessions
