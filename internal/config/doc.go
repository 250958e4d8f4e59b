// Package config loads, normalizes, and validates the TOML configuration
// shared by the cardscan CLI and the cardscand daemon.
package config
