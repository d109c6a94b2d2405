// Package logging builds slog loggers for the CLI and ripping engine.
//
// It supports console and JSON output, multiple output paths, attribute
// helper aliases, and component-scoped child loggers so packages log with a
// consistent shape.
package logging
