// Package extraction turns raw model output into a draft card record. It
// strips code-fence artifacts, decodes the single JSON object the prompt
// demands, and coerces each field with per-field fallback defaults so a
// draft never carries nulls.
package extraction
