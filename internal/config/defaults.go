package config

const (
	defaultDataDir              = "~/.local/share/cardscan"
	defaultLogDir               = "~/.local/share/cardscan/logs"
	defaultExportDir            = "~/.local/share/cardscan/exports"
	defaultAPIBind              = "127.0.0.1:7419"
	defaultGeminiBaseURL        = "https://generativelanguage.googleapis.com"
	defaultGeminiModel          = "gemini-flash-lite-latest"
	defaultGeminiTimeoutSeconds = 20
	defaultScryfallBaseURL      = "https://api.scryfall.com"
	defaultScryfallTimeout      = 20
	defaultNotifyRequestTimeout = 10
	defaultLogFormat            = "auto"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
			APIBind:   defaultAPIBind,
		},
		Gemini: Gemini{
			BaseURL:        defaultGeminiBaseURL,
			Model:          defaultGeminiModel,
			TimeoutSeconds: defaultGeminiTimeoutSeconds,
		},
		Scryfall: Scryfall{
			BaseURL:        defaultScryfallBaseURL,
			TimeoutSeconds: defaultScryfallTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Scans:          true,
			Exports:        true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
