package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"livefeed/internal/window"

	"github.com/pelletier/go-toml/v2"
)

// Config 是唯一持久化的配置文件结构。
type Config struct {
	BufferMax       int      `toml:"buffer_max"`
	NameColumnWidth int      `toml:"name_column_width"`
	MinWidth        int      `toml:"min_width"`
	ShowTimestamps  bool     `toml:"show_timestamps"`
	PollIntervalMS  int      `toml:"poll_interval_ms"`
	StatusTTLSecs   int      `toml:"status_ttl_secs"`
	LinkLimit       int      `toml:"link_limit"`
	Transcribe      bool     `toml:"transcribe"`
	DataDir         string   `toml:"data_dir"`
	LogPath         string   `toml:"log_path"`
	Simulate        Simulate `toml:"simulate"`
	Source          string   `toml:"-"`
}

// Simulate 控制调试模式下的模拟聊天源。
type Simulate struct {
	Chatters     int `toml:"chatters"`
	DelayLowerMS int `toml:"delay_lower_ms"`
	DelayUpperMS int `toml:"delay_upper_ms"`
	LengthLower  int `toml:"length_lower"`
	LengthUpper  int `toml:"length_upper"`
}

func Default() Config {
	return Config{
		BufferMax:       50,
		NameColumnWidth: 11,
		MinWidth:        30,
		PollIntervalMS:  150,
		StatusTTLSecs:   5,
		DataDir:         DefaultDataDir(),
		Simulate: Simulate{
			Chatters:     5,
			DelayLowerMS: 150,
			DelayUpperMS: 1500,
			LengthLower:  5,
			LengthUpper:  300,
		},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".livefeed", "config.toml")
}

// DefaultDataDir 返回聊天记录目录，$HOME 不可用时退回相对路径。
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "transcripts"
	}
	return filepath.Join(home, ".livefeed", "transcripts")
}

func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, errors.New("config path is empty and $HOME is not set")
	}
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = applyEnv(cfg)
			return cfg.Validate(), nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, err
	}
	cfg = applyEnv(cfg)
	return cfg.Validate(), nil
}

// PollInterval 返回界面刷新周期。
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// StatusTTL 返回状态栏存活时间。
func (c Config) StatusTTL() time.Duration {
	return time.Duration(c.StatusTTLSecs) * time.Second
}

// Validate 把越界的数值收敛到可用范围，返回修正后的副本。
func (c Config) Validate() Config {
	def := Default()
	if c.BufferMax < 1 {
		c.BufferMax = def.BufferMax
	}
	c.NameColumnWidth = min(max(c.NameColumnWidth, window.MinColumnWidth), window.MaxColumnWidth)
	if c.MinWidth < 1 {
		c.MinWidth = 1
	}
	if c.PollIntervalMS <= 0 {
		c.PollIntervalMS = def.PollIntervalMS
	}
	if c.StatusTTLSecs <= 0 {
		c.StatusTTLSecs = def.StatusTTLSecs
	}
	if c.LinkLimit < 0 {
		c.LinkLimit = 0
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = def.DataDir
	}

	s := &c.Simulate
	if s.Chatters < 1 {
		s.Chatters = def.Simulate.Chatters
	}
	if s.DelayLowerMS < 0 {
		s.DelayLowerMS = 0
	}
	if s.DelayUpperMS <= s.DelayLowerMS {
		s.DelayUpperMS = s.DelayLowerMS + 1
	}
	if s.LengthLower < 1 {
		s.LengthLower = 1
	}
	if s.LengthUpper <= s.LengthLower {
		s.LengthUpper = s.LengthLower + 1
	}
	return c
}

func applyEnv(cfg Config) Config {
	if env := strings.TrimSpace(os.Getenv("LIVEFEED_DATA_DIR")); env != "" {
		cfg.DataDir = env
	}
	if env := strings.TrimSpace(os.Getenv("LIVEFEED_LOG_PATH")); env != "" {
		cfg.LogPath = env
	}
	if env := strings.TrimSpace(os.Getenv("LIVEFEED_BUFFER_MAX")); env != "" {
		if n, err := strconv.Atoi(env); err == nil {
			cfg.BufferMax = n
		}
	}
	if env := strings.TrimSpace(os.Getenv("LIVEFEED_TRANSCRIBE")); env != "" {
		if b, err := strconv.ParseBool(env); err == nil {
			cfg.Transcribe = b
		}
	}
	return cfg
}
