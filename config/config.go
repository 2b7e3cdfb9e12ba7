package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tkarvinen/spotadvisor-go/logging"
)

// DefaultTokenSentinel is refused at boot unless explicitly allowed, so an
// unconfigured deployment can not run with a guessable token.
const DefaultTokenSentinel = "CHANGEME_SPOTADVISOR_TOKEN"

type AppConfigApi struct {
	Address string
	Port    int16
	// Bearer token for the advisory endpoint. Empty string disables auth.
	Token *string
}

func (a AppConfigApi) GetToken() string {
	if a.Token == nil {
		return DefaultTokenSentinel
	}
	return *a.Token
}

func (a AppConfigApi) GetPort() int16 {
	if a.Port == 0 {
		return 5000
	}
	return a.Port
}

type AppConfigFeed struct {
	Url string
	// Upstream fetch timeout in seconds, default: 10
	TimeoutSeconds *int `mapstructure:"timeout_seconds"`
	// User-Agent header sent to the price feed, default: "spotadvisor/1.0"
	UserAgent *string `mapstructure:"user_agent"`
}

func (f AppConfigFeed) GetTimeout() time.Duration {
	if f.TimeoutSeconds == nil {
		return 10 * time.Second
	}
	return time.Duration(*f.TimeoutSeconds) * time.Second
}

func (f AppConfigFeed) GetUserAgent() string {
	if f.UserAgent == nil {
		return "spotadvisor/1.0"
	}
	return *f.UserAgent
}

type AppConfigAdvisor struct {
	// VAT rate applied to raw feed prices, default: 0.255
	VatRate *float64 `mapstructure:"vat_rate"`
	// Window length when the request does not specify one, default: 180
	DefaultMinutes *int `mapstructure:"default_minutes"`
	// Language when the request does not specify one, default: "fi"
	DefaultLanguage *string `mapstructure:"default_language"`
	// Timezone for times in the advisory text, default: "Europe/Helsinki"
	Timezone *string
}

func (a AppConfigAdvisor) GetVatRate() float64 {
	if a.VatRate == nil {
		return 0.255
	}
	return *a.VatRate
}

func (a AppConfigAdvisor) GetDefaultMinutes() int {
	if a.DefaultMinutes == nil {
		return 180
	}
	return *a.DefaultMinutes
}

func (a AppConfigAdvisor) GetDefaultLanguage() string {
	if a.DefaultLanguage == nil {
		return "fi"
	}
	return *a.DefaultLanguage
}

func (a AppConfigAdvisor) GetTimezone() string {
	if a.Timezone == nil {
		return "Europe/Helsinki"
	}
	return *a.Timezone
}

type AppConfigCache struct {
	Enabled bool
	// How long a fetched price set stays fresh in seconds, default: 60
	TtlSeconds *int `mapstructure:"ttl_seconds"`
}

func (c AppConfigCache) GetTtl() time.Duration {
	if c.TtlSeconds == nil {
		return 60 * time.Second
	}
	return time.Duration(*c.TtlSeconds) * time.Second
}

type AppConfigDatabase struct {
	Path string
}

func (d AppConfigDatabase) GetPath() string {
	if d.Path == "" {
		return "spotadvisor.db"
	}
	return d.Path
}

type AppConfigLogging struct {
	// Min log level for database: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api      AppConfigApi
	Feed     AppConfigFeed
	Advisor  AppConfigAdvisor
	Cache    AppConfigCache
	Database AppConfigDatabase
	Logging  AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
