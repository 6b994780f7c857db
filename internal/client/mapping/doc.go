// Package mapping converts loosely-typed JSON payloads from the conference
// APIs into typed partial-update patches.
//
// The mapper is deliberately forgiving: a key that is absent or of the wrong
// type leaves the corresponding field unpopulated, so applying the patch
// never destroys previously-good data. Every skipped key is recorded as a
// diagnostic on the patch instead of being silently swallowed.
//
// The package is pure: no I/O and no store access, so it can be tested
// directly against literal JSON fixtures.
package mapping
