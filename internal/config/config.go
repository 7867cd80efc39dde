// Package config loads the workspace configuration of the language server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. GQLLS_LOG_LEVEL for log.level.
const EnvPrefix = "GQLLS"

// configNames are the config files looked up in the workspace directory, in
// order. A bare .graphqlrc is YAML.
var configNames = []string{
	".graphqlrc",
	".graphqlrc.yaml",
	".graphqlrc.yml",
	".graphqlrc.json",
	".graphqlrc.toml",
}

// Config is the workspace configuration.
type Config struct {
	// Dir is the workspace directory. Relative schema paths are resolved
	// against it.
	Dir string `mapstructure:"-"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`

	// Schema lists the schema files as paths or glob patterns. Each is SDL
	// or an introspection result in JSON.
	Schema []string `mapstructure:"schema"`

	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type ServerConfig struct {
	// MaxDocuments bounds the open documents kept per client.
	MaxDocuments int `mapstructure:"maxDocuments"`

	// Watch enables reloading the schema when its files change on disk.
	Watch bool `mapstructure:"watch"`

	// ReloadDebounce is how long the watcher waits for writes to settle.
	ReloadDebounce time.Duration `mapstructure:"reloadDebounce"`
}

// SetDefaults configures the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("schema", []string{"schema.graphql"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("server.maxDocuments", 100)
	v.SetDefault("server.watch", true)
	v.SetDefault("server.reloadDebounce", 200*time.Millisecond)
}

// Load reads the configuration of the workspace at dir. A missing config file
// is not an error. Overrides take precedence over the file and the
// environment.
func Load(dir string, overrides map[string]any) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	file := findConfigFile(dir)
	if file != "" {
		v.SetConfigFile(file)
		if filepath.Base(file) == ".graphqlrc" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
			}
			file = ""
		}
	}
	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Dir = dir
	cfg.File = file
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(dir string) string {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

func (c *Config) validate() error {
	if c.Server.MaxDocuments <= 0 {
		return fmt.Errorf("server.maxDocuments must be positive, got %d", c.Server.MaxDocuments)
	}
	if c.Server.ReloadDebounce < 0 {
		return fmt.Errorf("server.reloadDebounce must not be negative, got %s", c.Server.ReloadDebounce)
	}
	for _, pattern := range c.Schema {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid schema pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// patterns returns the schema patterns as absolute paths.
func (c *Config) patterns() []string {
	ret := make([]string, 0, len(c.Schema))
	for _, pattern := range c.Schema {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(c.Dir, pattern)
		}
		ret = append(ret, filepath.Clean(pattern))
	}
	return ret
}

// SchemaPaths returns the absolute paths of the existing schema files, sorted
// and without duplicates.
func (c *Config) SchemaPaths() ([]string, error) {
	var paths []string
	for _, pattern := range c.patterns() {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid schema pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// SchemaDirs returns the directories holding schema files, which is what a
// watcher needs to observe to see files being created.
func (c *Config) SchemaDirs() []string {
	var dirs []string
	for _, pattern := range c.patterns() {
		dirs = append(dirs, filepath.Dir(pattern))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// IsSchemaPath reports whether the absolute path matches a schema pattern.
func (c *Config) IsSchemaPath(path string) bool {
	path = filepath.Clean(path)
	for _, pattern := range c.patterns() {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
