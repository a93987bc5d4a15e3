package config

const (
	defaultOutputDir          = "~/flipbook"
	defaultLogDir             = "~/.local/share/flipbook/logs"
	defaultFormat             = "webp"
	defaultFPS                = 24
	defaultQuality            = 90
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultNotifyTimeout      = 10
	defaultEncoderTimeout     = 600
	defaultQueuePollInterval  = 2
	defaultErrorRetryInterval = 10
	defaultWatchSettleSeconds = 2
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Conversion: Conversion{
			Format:  defaultFormat,
			FPS:     defaultFPS,
			Quality: defaultQuality,
		},
		Encoder: Encoder{
			TimeoutSeconds: defaultEncoderTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Conversions:    true,
			Errors:         true,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			WatchSettleSeconds: defaultWatchSettleSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
