package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Look holds the glyphs drawn in the day grid.
type Look struct {
	TrueChr    string `mapstructure:"true_chr"`
	FalseChr   string `mapstructure:"false_chr"`
	FutureChr  string `mapstructure:"future_chr"`
	MissingChr string `mapstructure:"missing_chr"`
}

// Colors are colour names: ANSI names, "light <name>", 0-255 or #rrggbb.
type Colors struct {
	Reached  string `mapstructure:"reached"`
	Todo     string `mapstructure:"todo"`
	Inactive string `mapstructure:"inactive"`
}

type Paths struct {
	DataDir    string `mapstructure:"data_dir"`    // default ~/.local/share/tally
	ArchiveDir string `mapstructure:"archive_dir"` // default <data_dir>/archive
}

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "21:00"
	Days     []string `mapstructure:"days"`     // e.g. ["Mon","Wed"]; empty means every day
	Timezone string   `mapstructure:"timezone"` // e.g. "Europe/Berlin" (optional)
}

type Config struct {
	Look     Look           `mapstructure:"look"`
	Colors   Colors         `mapstructure:"colors"`
	Paths    Paths          `mapstructure:"paths"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

const baseChr = "·"

func Default() Config {
	return Config{
		Look: Look{
			TrueChr:    "+",
			FalseChr:   "-",
			FutureChr:  ".",
			MissingChr: "?",
		},
		Colors: Colors{
			Reached:  "cyan",
			Todo:     "magenta",
			Inactive: "light black",
		},
		Reminder: ReminderConfig{
			Enabled: false,
			Time:    "21:00",
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tally", "config.yaml"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tally", "config.yaml"), nil
}

// Load reads the config from the default location.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file is written out with the
// defaults; a present but unreadable file is an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("TALLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("look.true_chr", cfg.Look.TrueChr)
	v.SetDefault("look.false_chr", cfg.Look.FalseChr)
	v.SetDefault("look.future_chr", cfg.Look.FutureChr)
	v.SetDefault("look.missing_chr", cfg.Look.MissingChr)
	v.SetDefault("colors.reached", cfg.Colors.Reached)
	v.SetDefault("colors.todo", cfg.Colors.Todo)
	v.SetDefault("colors.inactive", cfg.Colors.Inactive)
	v.SetDefault("paths.data_dir", cfg.Paths.DataDir)
	v.SetDefault("paths.archive_dir", cfg.Paths.ArchiveDir)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.days", cfg.Reminder.Days)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "config: create %s: %v\n", filepath.Dir(path), err)
		} else if err := v.SafeWriteConfigAs(path); err != nil {
			fmt.Fprintf(os.Stderr, "config: write defaults: %v\n", err)
		}
	} else if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	// one glyph per cell
	for _, c := range []*string{&cfg.Look.TrueChr, &cfg.Look.FalseChr, &cfg.Look.FutureChr, &cfg.Look.MissingChr} {
		*c = firstRune(*c)
	}
	return cfg, nil
}

func firstRune(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return baseChr
	}
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// DataDir resolves the directory holding the snapshot file.
func (c Config) DataDir() (string, error) {
	if c.Paths.DataDir != "" {
		return homedir.Expand(c.Paths.DataDir)
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tally"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "tally"), nil
}

// ArchiveDir resolves the directory holding the monthly archive files.
func (c Config) ArchiveDir() (string, error) {
	if c.Paths.ArchiveDir != "" {
		return homedir.Expand(c.Paths.ArchiveDir)
	}
	data, err := c.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "archive"), nil
}
