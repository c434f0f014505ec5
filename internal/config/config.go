// Package config holds the settings shared by the CLI and the server. They
// are unmarshalled from Viper, which merges (in increasing precedence) the
// defaults, an optional seqdiff.yaml, SEQDIFF_* environment variables and
// bound command line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/aria-lang/seqdiff-go/internal/report"
	"github.com/aria-lang/seqdiff-go/pkg/seqdiff"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultMaxSequenceLength is the largest length for which two sequences
// still fit alignment.DefaultMaxCells.
const DefaultMaxSequenceLength = 7999

// EnvPrefix is the prefix of environment overrides, e.g. SEQDIFF_MODE or
// SEQDIFF_PENALTIES_INDEL.
const EnvPrefix = "SEQDIFF"

// ServerConfig is settings for seqdiff-server.
type ServerConfig struct {
	// listen address
	Addr string `mapstructure:"addr" validate:"required"`

	// per-request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`

	// longest sequence accepted in a request body
	MaxSequenceLength int `mapstructure:"max-sequence-length" validate:"gt=0"`

	// largest request body accepted
	MaxBodyBytes int64 `mapstructure:"max-body-bytes" validate:"gt=0"`
}

// Config is the root-level settings struct.
type Config struct {
	// unit costs of the edit model
	Penalties alignment.Penalties `mapstructure:"penalties"`

	// boundary mode: dovetail, bounded or global
	Mode string `mapstructure:"mode" validate:"alignmode"`

	// explicit lead window for bounded mode; 0 estimates it
	LeadWindow int `mapstructure:"lead-window" validate:"gte=0"`

	// resource limits; 0 disables
	MaxAlignLength int `mapstructure:"max-align-length" validate:"gte=0"`
	MaxCells       int `mapstructure:"max-cells" validate:"gte=0"`

	// count codon-level errors too
	Translate bool `mapstructure:"translate"`

	// quality threshold for trimming FASTQ read ends; 0 disables
	Trim int `mapstructure:"trim" validate:"gte=0,lte=93"`

	// output format: text, json or yaml
	Format string `mapstructure:"format" validate:"outformat"`

	// alignment block width
	Width int `mapstructure:"width" validate:"gte=0"`

	// debug, info, warn or error
	LogLevel string `mapstructure:"log-level" validate:"oneof=debug info warn error"`

	Server ServerConfig `mapstructure:"server"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("alignmode", func(fl validator.FieldLevel) bool {
		_, err := alignment.ParseMode(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("outformat", func(fl validator.FieldLevel) bool {
		_, err := report.ParseFormat(fl.Field().String())
		return err == nil
	})
}

// SetDefaults registers every key with its default so that environment
// variables are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	p := alignment.DefaultPenalties()
	v.SetDefault("penalties.indel", p.Indel)
	v.SetDefault("penalties.substitution", p.Substitution)
	v.SetDefault("penalties.ambiguity", p.Ambiguity)

	v.SetDefault("mode", alignment.Dovetail.String())
	v.SetDefault("lead-window", 0)
	v.SetDefault("max-align-length", alignment.DefaultMaxAlignLength)
	v.SetDefault("max-cells", alignment.DefaultMaxCells)
	v.SetDefault("translate", false)
	v.SetDefault("trim", 0)
	v.SetDefault("format", string(report.FormatText))
	v.SetDefault("width", report.DefaultWidth)
	v.SetDefault("log-level", "info")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.timeout", 60*time.Second)
	v.SetDefault("server.max-sequence-length", DefaultMaxSequenceLength)
	v.SetDefault("server.max-body-bytes", 1<<20)
}

// New returns a Viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("seqdiff")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/seqdiff")
	return v
}

// flagKeys maps flag names to nested keys where they differ.
var flagKeys = map[string]string{
	"indel":        "penalties.indel",
	"substitution": "penalties.substitution",
	"ambiguity":    "penalties.ambiguity",
	"addr":         "server.addr",
	"timeout":      "server.timeout",
}

// BindFlags binds every flag in flags to its key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key := f.Name
		if nested, ok := flagKeys[f.Name]; ok {
			key = nested
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil && err == nil {
			err = bindErr
		}
	})
	return err
}

// Load reads the optional config file (or path, when not empty) and returns
// the validated settings.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the struct tags and the cross-field penalty rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Penalties.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Engine returns the engine settings, logging through logger.
func (c *Config) Engine(logger *slog.Logger) (seqdiff.Config, error) {
	mode, err := alignment.ParseMode(c.Mode)
	if err != nil {
		return seqdiff.Config{}, err
	}

	cfg := seqdiff.DefaultConfig()
	cfg.Penalties = c.Penalties
	cfg.Mode = mode
	cfg.LeadWindow = c.LeadWindow
	cfg.MaxAlignLength = c.MaxAlignLength
	cfg.MaxCells = c.MaxCells
	cfg.Translate = c.Translate
	cfg.Logger = logger
	return cfg, nil
}

// SequenceLimit returns the longest sequence the server accepts: the
// configured maximum, lowered so that two sequences of that length fit
// MaxCells.
func (c *Config) SequenceLimit() int {
	limit := c.Server.MaxSequenceLength
	if c.MaxCells <= 0 {
		return limit
	}
	side := int(math.Sqrt(float64(c.MaxCells)))
	for side > 0 && side*side > c.MaxCells {
		side--
	}
	return max(min(limit, side-1), 1)
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() report.Format {
	f, _ := report.ParseFormat(c.Format)
	return f
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
