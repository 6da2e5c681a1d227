package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/biyonik/go-querykit"
	"github.com/biyonik/go-querykit/dialect"
	"github.com/biyonik/go-querykit/sqlconn"
)

const (
	maxWalkDepth = 25
	envPrefix    = "QUERYKIT"
)

// Config represents the querykit configuration from querykit.yaml.
type Config struct {
	Render   RenderConfig   `json:"render" mapstructure:"render"`
	Database sqlconn.Config `json:"database" mapstructure:"database"`
	Log      LogConfig      `json:"log" mapstructure:"log"`
}

// RenderConfig holds statement rendering settings.
type RenderConfig struct {
	Dialect    string `json:"dialect" mapstructure:"dialect"`
	Quote      string `json:"quote,omitempty" mapstructure:"quote"` // dialect'in tırnağını ezer
	Bare       bool   `json:"bare" mapstructure:"bare"`             // identifier'ları tırnaksız üret
	DateFormat string `json:"dateFormat,omitempty" mapstructure:"date_format"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level         string        `json:"level" mapstructure:"level"`
	Format        string        `json:"format" mapstructure:"format"` // text veya json
	SlowThreshold time.Duration `json:"slowThreshold" mapstructure:"slow_threshold"`
}

// Options returns the formatter options described by the render settings.
func (r RenderConfig) Options() ([]querykit.Option, error) {
	d, err := dialect.Lookup(r.Dialect)
	if err != nil {
		return nil, err
	}
	opts := []querykit.Option{querykit.WithDialect(d)}
	switch {
	case r.Bare:
		opts = append(opts, querykit.WithIdentifierQuote(""))
	case r.Quote != "":
		opts = append(opts, querykit.WithIdentifierQuote(r.Quote))
	}
	if r.DateFormat != "" {
		opts = append(opts, querykit.WithDateFormat(r.DateFormat))
	}
	return opts, nil
}

// Builder returns a statement builder configured by the render settings.
func (r RenderConfig) Builder() (*querykit.Builder, error) {
	opts, err := r.Options()
	if err != nil {
		return nil, err
	}
	return querykit.New(opts...), nil
}

// Redacted returns a copy of the configuration safe to print.
func (c Config) Redacted() Config {
	if c.Database.Password != "" {
		c.Database.Password = "********"
	}
	return c
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}
	if _, err := dialect.Lookup(cfg.Render.Dialect); err != nil {
		return nil, configPath, fmt.Errorf("render.dialect: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("render.dialect", dialect.MySQLName)
	v.SetDefault("render.quote", "")
	v.SetDefault("render.bare", false)
	v.SetDefault("render.date_format", "")

	db := sqlconn.DefaultConfig()
	v.SetDefault("database.driver", db.Driver)
	v.SetDefault("database.host", db.Host)
	v.SetDefault("database.port", db.Port)
	v.SetDefault("database.database", "")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.charset", db.Charset)
	v.SetDefault("database.collation", db.Collation)
	v.SetDefault("database.tls", false)
	v.SetDefault("database.max_open_conns", db.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", db.MaxIdleConns)
	v.SetDefault("database.conn_max_life", db.ConnMaxLife)
	v.SetDefault("database.conn_max_idle", db.ConnMaxIdle)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.slow_threshold", 100*time.Millisecond)
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for querykit.yaml or querykit.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for range maxWalkDepth {
		for _, name := range []string{"querykit.yaml", "querykit.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// depo kökünde dur
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}
