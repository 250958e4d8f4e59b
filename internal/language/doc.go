// Package language normalizes printed-language values coming from model
// extraction, catalog payloads, or user input into the display names the
// capture surface offers.
package language
