// Package notifications delivers scan and export events via ntfy.
//
// The default implementation publishes to the topic configured in
// config.toml and gracefully degrades to a no-op when no topic is set.
// Per-event toggles let users silence scan, export, or error pushes
// independently. All pipeline code depends only on the Service interface.
package notifications
