// Package config loads archmodel settings from a file and the environment.
//
// Settings are read from archmodel.{toml,yaml,json} in the working directory
// or $HOME/.config/archmodel, or from an explicit file. Environment
// variables override file values: ARCHMODEL_ followed by the upper-cased key
// path with dots replaced by underscores, e.g. ARCHMODEL_WORKSPACE_API_SECRET.
package config

import (
	stderrors "errors"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/matzehuels/archmodel/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ARCHMODEL"

// Sink types.
const (
	SinkHTTP   = "http"
	SinkFile   = "file"
	SinkWriter = "writer"
	SinkRedis  = "redis"
	SinkMongo  = "mongo"
)

type Config struct {
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Sink      SinkConfig      `mapstructure:"sink"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	File      FileConfig      `mapstructure:"file"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Server    ServerConfig    `mapstructure:"server"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

// WorkspaceConfig identifies the remote workspace and its API key pair.
type WorkspaceConfig struct {
	ID        string `mapstructure:"id"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

type SinkConfig struct {
	Type    string        `mapstructure:"type" validate:"oneof=http file writer redis mongo"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`
	Retries int           `mapstructure:"retries" validate:"min=0,max=10"`
}

type HTTPConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

type FileConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format" validate:"oneof=json hcl"`
}

type RedisConfig struct {
	Addr      string        `mapstructure:"addr" validate:"omitempty,hostname_port"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db" validate:"min=0"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl" validate:"min=0"`
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// ServerConfig configures the receiver started by "archmodel serve".
type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// Forward passes received workspaces on to the configured sink.
	Forward bool `mapstructure:"forward"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"min=0"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" validate:"min=0"`
}

type TracingConfig struct {
	Exporter string `mapstructure:"exporter" validate:"oneof=none stdout file"`
	File     string `mapstructure:"file"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// CacheConfig controls the publish digest cache.
type CacheConfig struct {
	Dir      string `mapstructure:"dir"`
	Disabled bool   `mapstructure:"disabled"`
}

// Load reads configuration from cfgFile, or from the default search path if
// cfgFile is empty, then applies environment overrides and validates the
// result. A missing default file is not an error; a missing explicit file
// is FILE_NOT_FOUND.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("archmodel")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/archmodel")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := stderrors.As(err, &notFound) || stderrors.Is(err, os.ErrNotExist)
		switch {
		case missing && cfgFile == "":
		case missing:
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", cfgFile)
		default:
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	// Registered so AutomaticEnv can override them.
	v.SetDefault("workspace.id", "")
	v.SetDefault("workspace.api_key", "")
	v.SetDefault("workspace.api_secret", "")

	v.SetDefault("sink.type", SinkHTTP)
	v.SetDefault("sink.timeout", "30s")
	v.SetDefault("sink.retries", 0)

	v.SetDefault("http.url", "")

	v.SetDefault("file.dir", ".")
	v.SetDefault("file.format", "json")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "archmodel:workspace:")
	v.SetDefault("redis.ttl", "0s")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "archmodel")
	v.SetDefault("mongo.collection", "workspaces")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.forward", false)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 10<<20)

	v.SetDefault("tracing.exporter", "none")
	v.SetDefault("tracing.file", "")

	v.SetDefault("logging.level", "info")

	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.disabled", false)
}

var validate = validator.New()

// Validate checks field constraints. It returns INVALID_CONFIG naming the
// first offending key. Settings that only the selected sink needs are
// checked by [Config.RequireSink].
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.New(errors.ErrCodeInvalidConfig, "%s: invalid value %v (%s)", keyPath(fe.Namespace()), fe.Value(), fe.Tag())
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}

	if c.Tracing.Exporter == "file" && c.Tracing.File == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "tracing.file required for the file exporter")
	}
	return nil
}

// RequireSink checks that the settings the selected sink needs are present.
func (c *Config) RequireSink() error {
	switch c.Sink.Type {
	case SinkHTTP:
		if c.HTTP.URL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "http.url required for the http sink")
		}
	case SinkFile:
		if c.File.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "file.dir required for the file sink")
		}
	case SinkRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis.addr required for the redis sink")
		}
	case SinkMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "mongo.uri, mongo.database and mongo.collection required for the mongo sink")
		}
	}
	return nil
}

// keyPath turns a validator namespace like "Config.Sink.Type" into the
// config key "sink.type".
func keyPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			// Keep acronyms together: "APIKey" -> "api_key", "TTL" -> "ttl".
			if i > 0 && (s[i-1] < 'A' || s[i-1] > 'Z' || (i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z')) {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
