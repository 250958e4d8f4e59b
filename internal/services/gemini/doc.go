// Package gemini wraps the generative-language multimodal endpoint used to
// extract card fields from a photo.
package gemini
