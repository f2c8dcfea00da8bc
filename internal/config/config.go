// Package config loads tend's settings from viper (config file, TEND_ env
// vars, and bound flags) into a typed Config.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/tend/internal/common"
)

const appName = "tend"

// Config keys.
const (
	KeyDatabasePath       = "database.path"
	KeyLogLevel           = "logging.level"
	KeyLogFormat          = "logging.format"
	KeyDefaultCadenceDays = "people.default_cadence_days"
	KeyTimezone           = "display.timezone"
	KeyTheme              = "display.theme"
)

// DefaultCadenceDays is used for new people when no cadence is given.
const DefaultCadenceDays = 14

// Config is the resolved application configuration.
type Config struct {
	Location           *time.Location
	DatabasePath       string
	LogLevel           string
	LogFormat          string
	Theme              string
	DefaultCadenceDays int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, filepath.Join(DataDir(), appName+".db"))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyDefaultCadenceDays, DefaultCadenceDays)
	v.SetDefault(KeyTimezone, "Local")
	v.SetDefault(KeyTheme, "default")
}

// Load resolves configuration from v. Unset values fall back to SetDefaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath:       ExpandPath(v.GetString(KeyDatabasePath)),
		LogLevel:           strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:          strings.ToLower(v.GetString(KeyLogFormat)),
		Theme:              strings.ToLower(v.GetString(KeyTheme)),
		DefaultCadenceDays: v.GetInt(KeyDefaultCadenceDays),
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if cfg.DefaultCadenceDays <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d",
			common.ErrInvalidConfig, KeyDefaultCadenceDays, cfg.DefaultCadenceDays)
	}

	loc, err := LoadLocation(v.GetString(KeyTimezone))
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	return cfg, nil
}

// LoadLocation resolves an IANA zone name. "" and "Local" mean the system zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", common.ErrInvalidConfig, KeyTimezone, name, err)
	}
	return loc, nil
}

// Now returns the current time in the configured location.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location)
}
