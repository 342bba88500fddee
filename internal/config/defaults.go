package config

const (
	defaultSourceURL      = "https://vavoo.to/channels"
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"
	defaultReferer        = "https://vavoo.to/"
	defaultTimeoutSeconds = 15
	defaultOutputFile     = "vavoo_kanallar.m3u8"
	defaultBasePlayURL    = "https://vavoo.to/play/"
	defaultPlaySuffix     = "/index.m3u8"
	defaultChannelName    = "Unnamed Channel"
	defaultChannelGroup   = "Other Channels"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Source: Source{
			URL:            defaultSourceURL,
			UserAgent:      defaultUserAgent,
			Referer:        defaultReferer,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Playlist: Playlist{
			OutputFile:   defaultOutputFile,
			BasePlayURL:  defaultBasePlayURL,
			PlaySuffix:   defaultPlaySuffix,
			DefaultName:  defaultChannelName,
			DefaultGroup: defaultChannelGroup,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
