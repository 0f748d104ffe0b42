// Package config loads command line settings from defaults, an optional
// YAML file, CITECTX_* environment variables and bound flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/tsawler/citectx/extract"
	"github.com/tsawler/citectx/htmldoc"
	"github.com/tsawler/citectx/internal/logging"
	"github.com/tsawler/citectx/model"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. CITECTX_WORKERS.
	EnvPrefix = "CITECTX"

	// DefaultFile is read from the working directory when no file is given.
	DefaultFile = "citectx.yaml"
)

// Keys understood by the loader.
const (
	KeyWorkers = "workers"
	KeySink    = "sink"
	KeyOut     = "out"
	KeySource  = "source"
	KeyBaseURL = "base-url"

	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	KeyLogFile       = "log.file"
	KeyLogMaxSizeMB  = "log.max-size-mb"
	KeyLogMaxBackups = "log.max-backups"

	KeyMinParagraphChars    = "extract.min-paragraph-chars"
	KeyMinTableBodyChars    = "extract.min-table-body-chars"
	KeyMinImagePixels       = "extract.min-image-pixels"
	KeyMaxMentions          = "extract.max-mentions"
	KeyTableContextOverlap  = "extract.table-context-min-overlap"
	KeyFigureContextOverlap = "extract.figure-context-min-overlap"
	KeyImageDenylist        = "extract.image-denylist"
	KeyExtraStopwords       = "extract.extra-stopwords"
	KeyNavigation           = "extract.navigation"
	KeyOnly                 = "extract.only"
)

// Config wraps a viper instance holding the merged settings.
type Config struct {
	v *viper.Viper
}

// New returns a Config holding defaults and bound to the environment.
func New() *Config {
	v := viper.New()
	v.SetConfigType("yaml")

	// CITECTX_LOG_LEVEL maps to "log.level", CITECTX_BASE_URL to "base-url".
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeySink, "jsonl")
	v.SetDefault(KeyOut, "-")
	v.SetDefault(KeySource, "")
	v.SetDefault(KeyBaseURL, "")

	logDefaults := logging.DefaultOptions()
	v.SetDefault(KeyLogLevel, logDefaults.Level)
	v.SetDefault(KeyLogFormat, logDefaults.Format)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSizeMB, logDefaults.MaxSizeMB)
	v.SetDefault(KeyLogMaxBackups, logDefaults.MaxBackups)

	d := extract.DefaultConfig()
	v.SetDefault(KeyMinParagraphChars, d.MinParagraphChars)
	v.SetDefault(KeyMinTableBodyChars, d.MinTableBodyChars)
	v.SetDefault(KeyMinImagePixels, d.MinImagePixels)
	v.SetDefault(KeyMaxMentions, d.MaxMentions)
	v.SetDefault(KeyTableContextOverlap, d.TableContextMinOverlap)
	v.SetDefault(KeyFigureContextOverlap, d.FigureContextMinOverlap)
	v.SetDefault(KeyImageDenylist, d.ImageDenylist)
	v.SetDefault(KeyExtraStopwords, []string{})
	v.SetDefault(KeyNavigation, d.Navigation.String())
	v.SetDefault(KeyOnly, "")

	return &Config{v: v}
}

// Viper exposes the underlying instance so flags can be bound to it.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

// Load reads the config file at path. With an empty path, DefaultFile is
// read when it exists and silently skipped otherwise.
func (c *Config) Load(path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("checking %s: %w", DefaultFile, err)
		}
		path = DefaultFile
	}

	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	return nil
}

// FileUsed returns the config file that was read, if any.
func (c *Config) FileUsed() string {
	return c.v.ConfigFileUsed()
}

// Workers returns the batch concurrency; zero means one per CPU.
func (c *Config) Workers() int { return c.v.GetInt(KeyWorkers) }

// Sink returns the output kind.
func (c *Config) Sink() string { return c.v.GetString(KeySink) }

// Out returns the output path; "-" is stdout.
func (c *Config) Out() string { return c.v.GetString(KeyOut) }

// Source returns the source applied to every document, or "".
func (c *Config) Source() string { return c.v.GetString(KeySource) }

// BaseURL returns the base URL template, or "".
func (c *Config) BaseURL() string { return c.v.GetString(KeyBaseURL) }

// Logging returns the logger options.
func (c *Config) Logging() logging.Options {
	return logging.Options{
		Level:      c.v.GetString(KeyLogLevel),
		Format:     c.v.GetString(KeyLogFormat),
		File:       c.v.GetString(KeyLogFile),
		MaxSizeMB:  c.v.GetInt(KeyLogMaxSizeMB),
		MaxBackups: c.v.GetInt(KeyLogMaxBackups),
	}
}

// ExtractConfig converts the extract.* keys into an extract.Config.
// Thresholds that have no key keep their defaults.
func (c *Config) ExtractConfig() (extract.Config, error) {
	cfg := extract.DefaultConfig()
	cfg.MinParagraphChars = c.v.GetInt(KeyMinParagraphChars)
	cfg.MinTableBodyChars = c.v.GetInt(KeyMinTableBodyChars)
	cfg.MinImagePixels = c.v.GetInt(KeyMinImagePixels)
	cfg.MaxMentions = c.v.GetInt(KeyMaxMentions)
	cfg.TableContextMinOverlap = c.v.GetInt(KeyTableContextOverlap)
	cfg.FigureContextMinOverlap = c.v.GetInt(KeyFigureContextOverlap)
	cfg.ImageDenylist = c.v.GetStringSlice(KeyImageDenylist)

	if extra := c.v.GetStringSlice(KeyExtraStopwords); len(extra) > 0 {
		cfg.Stopwords = cfg.Stopwords.With(extra...)
	}

	mode, err := htmldoc.ParseNavigationMode(c.v.GetString(KeyNavigation))
	if err != nil {
		return extract.Config{}, fmt.Errorf("%s: %w", KeyNavigation, err)
	}
	cfg.Navigation = mode

	if only := strings.TrimSpace(c.v.GetString(KeyOnly)); only != "" {
		kind := model.ParseKind(strings.ToLower(only))
		if kind == model.KindUnknown {
			return extract.Config{}, fmt.Errorf("%s: unknown entity kind %q", KeyOnly, only)
		}
		cfg.Only = kind
	}

	return cfg, nil
}
