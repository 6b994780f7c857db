// Package cli provides the interactive confsync command-line client.
//
// It wires configuration, the local cache database, the conference API
// client, and an interactive REPL for browsing the cached schedule. Typical
// flow: open the cache, project it, sync against the remote API on demand,
// and execute user commands.
//
// Key features:
//   - Sync sessions and guests from the REST API
//   - List the schedule grouped by start time, with a text filter
//   - Star / unstar sessions
//   - Jump to the section nearest a given time
//   - Follow the live websocket feed until interrupted
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
