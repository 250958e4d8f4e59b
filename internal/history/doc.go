// Package history persists confirmed cards to a local SQLite database.
//
// The store keeps one row per caught card. Drafts never touch the database;
// a row appears only when the user confirms a scan or edits an existing
// entry. Listing is most-recent-first so the newest catch is always on top.
package history
