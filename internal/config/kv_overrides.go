package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides.
// Unknown keys and unparsable values are ignored.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "buffer_max":
			setInt(&cfg.BufferMax, val)
		case "name_column_width":
			setInt(&cfg.NameColumnWidth, val)
		case "min_width":
			setInt(&cfg.MinWidth, val)
		case "show_timestamps":
			setBool(&cfg.ShowTimestamps, val)
		case "poll_interval_ms":
			setInt(&cfg.PollIntervalMS, val)
		case "status_ttl_secs":
			setInt(&cfg.StatusTTLSecs, val)
		case "link_limit":
			setInt(&cfg.LinkLimit, val)
		case "transcribe":
			setBool(&cfg.Transcribe, val)
		case "data_dir":
			cfg.DataDir = val
		case "log_path":
			cfg.LogPath = val
		case "simulate.chatters":
			setInt(&cfg.Simulate.Chatters, val)
		case "simulate.delay_lower_ms":
			setInt(&cfg.Simulate.DelayLowerMS, val)
		case "simulate.delay_upper_ms":
			setInt(&cfg.Simulate.DelayUpperMS, val)
		case "simulate.length_lower":
			setInt(&cfg.Simulate.LengthLower, val)
		case "simulate.length_upper":
			setInt(&cfg.Simulate.LengthUpper, val)
		}
	}
	return cfg.Validate()
}

func setInt(dst *int, val string) {
	if n, err := strconv.Atoi(val); err == nil {
		*dst = n
	}
}

func setBool(dst *bool, val string) {
	if b, err := strconv.ParseBool(val); err == nil {
		*dst = b
	}
}
