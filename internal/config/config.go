// Package config loads huekit settings from defaults, an optional YAML file,
// a .env file, HUEKIT_ environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/huekit/internal/export"
	"github.com/jmylchreest/huekit/internal/extract"
	"github.com/jmylchreest/huekit/internal/logging"
	"github.com/jmylchreest/huekit/internal/random"
	"github.com/jmylchreest/huekit/internal/util/imagecache"
)

// EnvPrefix is prepended to every environment key: extract.colours is read
// from HUEKIT_EXTRACT_COLOURS.
const EnvPrefix = "HUEKIT"

// DotEnvFile is loaded from the working directory when present.
const DotEnvFile = ".env"

// Server modes.
const (
	ServerModeRelease = "release"
	ServerModeDebug   = "debug"
)

// Config is the resolved configuration.
type Config struct {
	// File is the config file that was read, empty when none was found.
	File string

	Seed    random.Config
	Extract ExtractConfig
	Server  ServerConfig
	HTTP    HTTPConfig
	Export  ExportConfig
	Plugins PluginsConfig
	Log     LogConfig
}

// ExtractConfig tunes image extraction.
type ExtractConfig struct {
	Colours      int
	MaxDimension int
	Algorithm    extract.Algorithm
	CacheDir     string
}

// ServerConfig configures `huekit serve`.
type ServerConfig struct {
	Addr string
	Mode string
}

// HTTPConfig configures outbound fetches.
type HTTPConfig struct {
	Timeout time.Duration
}

// ExportConfig holds the default export format.
type ExportConfig struct {
	Format export.Format
}

// PluginsConfig maps exporter plugin names to binaries.
type PluginsConfig struct {
	Exporters map[string]string
}

// LogConfig configures logging.
type LogConfig struct {
	Level string
	JSON  bool
}

// flagKeys binds command-line flags to config keys. Flags missing from the
// set being loaded are skipped.
var flagKeys = map[string]string{
	"seed":          "seed.value",
	"seed-mode":     "seed.mode",
	"colours":       "extract.colours",
	"max-dimension": "extract.max_dimension",
	"algorithm":     "extract.algorithm",
	"cache-dir":     "extract.cache_dir",
	"addr":          "server.addr",
	"server-mode":   "server.mode",
	"timeout":       "http.timeout",
	"format":        "export.format",
	"log-level":     "log.level",
	"log-json":      "log.json",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("seed.mode", string(random.ModeRandom))
	v.SetDefault("seed.value", 0)

	v.SetDefault("extract.colours", 5)
	v.SetDefault("extract.max_dimension", extract.DefaultOptions().MaxDimension)
	v.SetDefault("extract.algorithm", string(extract.AlgorithmQuantize))
	v.SetDefault("extract.cache_dir", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", ServerModeRelease)

	v.SetDefault("http.timeout", "10s")

	v.SetDefault("export.format", string(export.FormatCSS))

	v.SetDefault("plugins.exporters", map[string]string{})

	v.SetDefault("log.level", logging.LevelInfo)
	v.SetDefault("log.json", false)
}

// DefaultPath returns $XDG_CONFIG_HOME/huekit/config.yaml, or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "huekit", "config.yaml")
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration. An explicit path must exist; with an
// empty path DefaultPath is read if present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file, err := readFile(v, path)
	if err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.File = file

	// An explicit --seed implies a deterministic run.
	if flags != nil && flags.Changed("seed") && !flags.Changed("seed-mode") {
		cfg.Seed.Mode = random.ModeManual
	}

	return cfg, nil
}

func readFile(v *viper.Viper, path string) (string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return "", nil
		}
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand config path %s: %w", path, err)
	}

	if _, err := os.Stat(expanded); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config: %w", err)
	}

	v.SetConfigFile(expanded)
	if filepath.Ext(expanded) == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}
	return expanded, nil
}

func decode(v *viper.Viper) (*Config, error) {
	mode, err := random.ParseMode(v.GetString("seed.mode"))
	if err != nil {
		return nil, err
	}

	algorithm, err := extract.ParseAlgorithm(v.GetString("extract.algorithm"))
	if err != nil {
		return nil, err
	}

	format, err := export.ParseFormat(v.GetString("export.format"))
	if err != nil {
		return nil, err
	}

	colours := v.GetInt("extract.colours")
	if colours < 1 || colours > extract.MaxColours {
		return nil, fmt.Errorf("extract.colours must be between 1 and %d, got %d", extract.MaxColours, colours)
	}

	maxDim := v.GetInt("extract.max_dimension")
	if maxDim < 1 {
		return nil, fmt.Errorf("extract.max_dimension must be positive, got %d", maxDim)
	}

	serverMode := v.GetString("server.mode")
	if serverMode != ServerModeRelease && serverMode != ServerModeDebug {
		return nil, fmt.Errorf("invalid server.mode: %s (valid: release, debug)", serverMode)
	}

	timeout := v.GetDuration("http.timeout")
	if timeout <= 0 {
		return nil, fmt.Errorf("http.timeout must be positive, got %q", v.GetString("http.timeout"))
	}

	cacheDir := v.GetString("extract.cache_dir")
	if cacheDir == "" {
		if cacheDir, err = imagecache.DefaultDir(); err != nil {
			return nil, err
		}
	}
	if cacheDir, err = homedir.Expand(cacheDir); err != nil {
		return nil, fmt.Errorf("failed to expand extract.cache_dir: %w", err)
	}

	exporters := make(map[string]string)
	for name, path := range v.GetStringMapString("plugins.exporters") {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("failed to expand plugin path for %s: %w", name, err)
		}
		exporters[name] = expanded
	}

	return &Config{
		Seed: random.Config{
			Mode:  mode,
			Value: v.GetUint64("seed.value"),
		},
		Extract: ExtractConfig{
			Colours:      colours,
			MaxDimension: maxDim,
			Algorithm:    algorithm,
			CacheDir:     cacheDir,
		},
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
			Mode: serverMode,
		},
		HTTP:    HTTPConfig{Timeout: timeout},
		Export:  ExportConfig{Format: format},
		Plugins: PluginsConfig{Exporters: exporters},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			JSON:  v.GetBool("log.json"),
		},
	}, nil
}
