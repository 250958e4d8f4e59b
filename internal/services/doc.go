// Package services defines shared utilities consumed by the pipeline and
// the external integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     (recognition vs catalog vs persistence) and feed the single transient
//     message surfaced to users.
//   - Context helpers that stamp capture tokens, card identifiers, and
//     correlation identifiers for logging.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform across components.
package services
