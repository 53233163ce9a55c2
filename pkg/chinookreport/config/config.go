// Package config loads report settings from defaults, a YAML file, the environment and flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport"
	"github.com/ukaji3/chinookreport-go/pkg/chinookreport/logging"
	"github.com/xuri/excelize/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. CHINOOK_DATABASE_PATH.
const EnvPrefix = "CHINOOK_"

// DefaultFiles are looked up in the working directory when no file is given.
var DefaultFiles = []string{"chinookreport.yaml", "chinookreport.yml"}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"db":         "database.path",
	"output":     "output.path",
	"log-level":  "log.level",
	"log-format": "log.format",
	"chart-rows": "chart.rows",
}

// Config is the full report configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Output   OutputConfig   `koanf:"output"`
	Log      LogConfig      `koanf:"log"`
	Chart    ChartConfig    `koanf:"chart"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type OutputConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type ChartConfig struct {
	Rows   int    `koanf:"rows"`
	Anchor string `koanf:"anchor"`
	Width  uint   `koanf:"width"`
	Height uint   `koanf:"height"`
}

func defaults() map[string]interface{} {
	opts := chinookreport.DefaultOptions()
	return map[string]interface{}{
		"database.path": opts.DatabasePath,
		"output.path":   opts.OutputPath,
		"log.level":     "info",
		"log.format":    logging.FormatConsole,
		"chart.rows":    opts.Chart.Rows,
		"chart.anchor":  opts.Chart.Anchor,
		"chart.width":   opts.Chart.Width,
		"chart.height":  opts.Chart.Height,
	}
}

// findConfigFile returns the explicit path, else the first default file present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the configuration.
// Precedence (highest to lowest): changed flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// CHINOOK_CHART_ROWS -> chart.rows
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required values and formats.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.Format != logging.FormatConsole && c.Log.Format != logging.FormatJSON {
		return fmt.Errorf("invalid log.format %q (must be %s or %s)", c.Log.Format, logging.FormatConsole, logging.FormatJSON)
	}
	if c.Chart.Rows < 1 {
		return fmt.Errorf("chart.rows must be positive, got %d", c.Chart.Rows)
	}
	if _, _, err := excelize.CellNameToCoordinates(c.Chart.Anchor); err != nil {
		return fmt.Errorf("invalid chart.anchor %q: %w", c.Chart.Anchor, err)
	}
	if c.Chart.Width == 0 || c.Chart.Height == 0 {
		return fmt.Errorf("chart.width and chart.height must be positive")
	}
	return nil
}

// ReportOptions converts the configuration into generation options.
func (c *Config) ReportOptions() chinookreport.Options {
	return chinookreport.Options{
		DatabasePath: c.Database.Path,
		OutputPath:   c.Output.Path,
		Chart: chinookreport.ChartOptions{
			Rows:   c.Chart.Rows,
			Anchor: c.Chart.Anchor,
			Width:  c.Chart.Width,
			Height: c.Chart.Height,
		},
	}
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format}
}

// BindFlags registers the generate flags that override configuration keys.
// Only flags set on the command line take effect.
func BindFlags(fs *pflag.FlagSet) {
	opts := chinookreport.DefaultOptions()
	fs.String("db", opts.DatabasePath, "SQLite database path")
	fs.StringP("output", "o", opts.OutputPath, "Output workbook path")
	fs.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	fs.String("log-format", logging.FormatConsole, "Log format: console or json")
	fs.Int("chart-rows", opts.Chart.Rows, "Genre rows referenced by the Pareto chart")
}
