// Package catalog resolves an extracted card against the Scryfall catalog
// through an ordered chain of lookup attempts, most specific first, and
// stops at the first usable artwork hit. A total miss is a legitimate
// outcome, never an error.
package catalog
