// Package history persists a record of rip runs in a SQLite database
// under the configured state directory. Each run is keyed by a UUID and
// tracks the disc name, media kind, device, output location, and final
// outcome so past rips can be listed or cleared from the CLI.
package history
