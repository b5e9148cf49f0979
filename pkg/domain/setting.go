package domain

// setting keys
const (
	SettingRefreshInterval    = "refresh_interval_minutes"
	SettingAutoRefreshEnabled = "auto_refresh_enabled"
)

// refresh interval bounds, in minutes
const (
	DefaultRefreshInterval = 30
	MinRefreshInterval     = 5
	MaxRefreshInterval     = 1440
)

// DefaultSettings returns the values used for keys never stored
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingRefreshInterval:    "30",
		SettingAutoRefreshEnabled: "1",
	}
}

// ClampRefreshInterval bounds minutes to the allowed refresh interval range
func ClampRefreshInterval(minutes int) int {
	if minutes < MinRefreshInterval {
		return MinRefreshInterval
	}
	if minutes > MaxRefreshInterval {
		return MaxRefreshInterval
	}
	return minutes
}
