// Package pipeline sequences a capture from photo to confirmed card.
//
// One capture at a time: recognition and parsing run synchronously and
// produce a draft; catalog enrichment then runs in the background and
// updates the draft in place. Every capture gets a token, and enrichment
// results carrying a stale token are dropped so a dismissed capture can
// never overwrite a newer one. State changes are published on an event
// channel consumed by the daemon's websocket layer.
package pipeline
