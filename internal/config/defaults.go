package config

const (
	defaultDevicePath          = "/dev/sr0"
	defaultReadyTimeoutSeconds = 10
	defaultEjectDelaySeconds   = 2
	defaultStateDir            = "~/.local/share/platter"
	defaultDoneSound           = "/usr/share/sounds/KDE-Im-Nudge.ogg"
	defaultFailSound           = "/usr/share/sounds/KDE-K3B-Finish-Error.ogg"
	defaultNtfyRequestTimeout  = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Device: Device{
			Path:         defaultDevicePath,
			ReadyTimeout: defaultReadyTimeoutSeconds,
			EjectDelay:   defaultEjectDelaySeconds,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Sounds: Sounds{
			Done: defaultDoneSound,
			Fail: defaultFailSound,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
