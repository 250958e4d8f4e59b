// Package scryfall provides access to the Scryfall card catalog API for
// direct printing lookups and structured searches.
package scryfall
