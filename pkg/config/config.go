// Package config loads hostfacts settings from flags, HOSTFACTS_* environment
// variables, an optional hostfacts.yaml and an optional dotenv file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vertti/hostfacts/pkg/logging"
)

const (
	EnvPrefix      = "HOSTFACTS"
	configName     = "hostfacts"
	defaultEnvFile = ".env"
)

// Config is the merged hostfacts configuration.
type Config struct {
	Log   logging.Config `mapstructure:"log"`
	Exec  ExecConfig     `mapstructure:"exec"`
	Facts FactsConfig    `mapstructure:"facts"`
}

// ExecConfig holds defaults for commands run by the exec subcommand.
type ExecConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// FactsConfig controls fact output.
type FactsConfig struct {
	// Format is text, json or yaml. Empty picks one based on the terminal.
	Format string `mapstructure:"format"`
}

var defaults = map[string]any{
	"log.level":    "warn",
	"log.format":   logging.FormatConsole,
	"log.no_color": false,
	"exec.timeout": time.Duration(0),
	"facts.format": "",
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"no-color":   "log.no_color",
	"timeout":    "exec.timeout",
	"format":     "facts.format",
}

type loader struct {
	flags      *pflag.FlagSet
	configFile string
	envFile    string
	searchDirs []string
}

// Option customizes Load.
type Option func(*loader)

// WithFlags binds the known flags present in fs.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(l *loader) { l.flags = fs }
}

// WithConfigFile reads path instead of searching for hostfacts.yaml.
func WithConfigFile(path string) Option {
	return func(l *loader) { l.configFile = path }
}

// WithEnvFile reads path instead of ./.env.
func WithEnvFile(path string) Option {
	return func(l *loader) { l.envFile = path }
}

// WithSearchDirs replaces the directories searched for hostfacts.yaml.
func WithSearchDirs(dirs ...string) Option {
	return func(l *loader) { l.searchDirs = dirs }
}

// Load merges configuration sources. Precedence, highest first: changed
// flags, HOSTFACTS_* environment variables, the config file, the dotenv
// file, defaults. Missing files are not an error unless named explicitly.
func Load(opts ...Option) (*Config, error) {
	l := &loader{searchDirs: defaultSearchDirs()}
	for _, opt := range opts {
		opt(l)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := l.applyEnvFile(v); err != nil {
		return nil, err
	}
	if err := l.readConfigFile(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.flags != nil {
		for name, key := range flagKeys {
			if f := l.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.Exec.Timeout < 0 {
		return errors.New("exec.timeout must not be negative")
	}
	switch c.Facts.Format {
	case "", "text", "json", "yaml":
		return nil
	}
	return errors.New("facts.format must be one of text, json, yaml (got: " + c.Facts.Format + ")")
}

// applyEnvFile layers HOSTFACTS_* values from a dotenv file over the
// defaults. The file is never exported into the process environment.
func (l *loader) applyEnvFile(v *viper.Viper) error {
	path := l.envFile
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	for key := range defaults {
		if value, ok := values[EnvVar(key)]; ok {
			v.SetDefault(key, value)
		}
	}
	return nil
}

func (l *loader) readConfigFile(v *viper.Viper) error {
	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
		return v.ReadInConfig()
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, dir := range l.searchDirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// EnvVar returns the environment variable that sets key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func defaultSearchDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", configName))
	}
	return dirs
}
