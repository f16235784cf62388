package docx

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/klauspost/compress/zip"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of the environment variables read by LoadConfig.
const EnvPrefix = "DOCXDOM_"

// Config contains the options that govern opening and saving documents
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `koanf:"log_level"`
	// MainPart is the archive member parsed into the document tree.
	MainPart string `koanf:"main_part"`
	// TempDir holds the temporary archive written by Save. Empty means the
	// directory of the target file. It must be on the same filesystem as the
	// target for the final rename to succeed.
	TempDir string `koanf:"temp_dir"`
	// Compression is the method for members Save writes itself: "deflate" or "store".
	Compression string `koanf:"compression"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		config, problems := configFromEnvironment()
		globalConfigMutex.Lock()
		globalConfig = config
		globalConfigMutex.Unlock()
		// the logger is created only now, so it sees the configured level
		for _, problem := range problems {
			GetLogger().Warn("ignoring %v", problem)
		}
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		MainPart:    DefaultMainPart,
		TempDir:     "",
		Compression: "deflate",
	}
}

func defaultsMap() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		"log_level":   d.LogLevel,
		"main_part":   d.MainPart,
		"temp_dir":    d.TempDir,
		"compression": d.Compression,
	}
}

// ConfigFromEnvironment creates a configuration from DOCXDOM_* environment
// variables on top of the defaults. An invalid setting is logged and replaced
// by its default; the valid ones are kept.
func ConfigFromEnvironment() *Config {
	config, problems := configFromEnvironment()
	for _, problem := range problems {
		GetLogger().Warn("ignoring %v", problem)
	}
	return config
}

func configFromEnvironment() (*Config, []error) {
	k, err := loadKoanf("", nil)
	if err != nil {
		return DefaultConfig(), []error{err}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return DefaultConfig(), []error{fmt.Errorf("unable to decode config: %w", err)}
	}

	defaults := DefaultConfig()
	var problems []error
	if err := cfg.validateLogLevel(); err != nil {
		problems = append(problems, err)
		cfg.LogLevel = defaults.LogLevel
	}
	if err := cfg.validateMainPart(); err != nil {
		problems = append(problems, err)
		cfg.MainPart = defaults.MainPart
	}
	if err := cfg.validateCompression(); err != nil {
		problems = append(problems, err)
		cfg.Compression = defaults.Compression
	}
	return &cfg, problems
}

// LoadConfig loads configuration from defaults, an optional YAML file,
// DOCXDOM_* environment variables and explicitly set flags, in increasing
// order of precedence. Flag names use dashes (--main-part) for snake_case keys.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k, err := loadKoanf(cfgFile, flags)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadKoanf(cfgFile string, flags *pflag.FlagSet) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		known := defaultsMap()
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, ok := known[key]; !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}
	return k, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	if err := c.validateMainPart(); err != nil {
		return err
	}
	return c.validateCompression()
}

func (c *Config) validateLogLevel() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "off":
		return nil
	}
	return errors.New("invalid log level: " + c.LogLevel)
}

func (c *Config) validateMainPart() error {
	if !validMemberPath(c.MainPart) || path.Ext(c.MainPart) != ".xml" {
		return errors.New("invalid main part: " + c.MainPart)
	}
	return nil
}

func (c *Config) validateCompression() error {
	switch c.Compression {
	case "deflate", "store":
		return nil
	}
	return errors.New("invalid compression: " + c.Compression)
}

// method maps Compression onto a zip method.
func (c *Config) method() uint16 {
	if c.Compression == "store" {
		return zip.Store
	}
	return zip.Deflate
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	UpdateLoggerFromConfig()
}
