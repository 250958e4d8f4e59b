// Package logging builds the slog loggers used across cardscan: a console
// handler for interactive terminals, a JSON handler for the daemon, attr
// helper aliases, and context-derived structured fields.
package logging
