// Package cards defines the card record shared across the pipeline,
// including the sentinel conventions for unknown fields and the condition
// code vocabulary.
package cards
