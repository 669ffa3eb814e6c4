package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

type AppCfg struct {
	Env                 string `mapstructure:"env"`
	Port                int    `mapstructure:"port"`
	JWTSecret           string `mapstructure:"jwt_secret"`
	TokenTTLDays        int    `mapstructure:"token_ttl_days"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type MongoCfg struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type S3Cfg struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
}

type SearchCfg struct {
	// AllOrganizations widens user search to every organization the
	// requester has joined instead of only the first one.
	AllOrganizations bool `mapstructure:"all_organizations"`
}

type Config struct {
	App    AppCfg    `mapstructure:"app"`
	Mongo  MongoCfg  `mapstructure:"mongodb"`
	Redis  RedisCfg  `mapstructure:"redis"`
	S3     S3Cfg     `mapstructure:"s3"`
	Search SearchCfg `mapstructure:"search"`
	// Derived
	TokenTTL     time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c *Config) Development() bool { return c.App.Env != "production" }

// Addr is the listen address derived from the configured port.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.App.Port) }

// Load reads the YAML config at path and applies APP_* environment
// overrides (APP_MONGODB_URI, APP_APP_JWT_SECRET, ...).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.token_ttl_days", 15)
	v.SetDefault("app.read_timeout_seconds", 15)
	v.SetDefault("app.write_timeout_seconds", 15)
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "chattu")
	v.SetDefault("redis.prefix", "chattu")
	v.SetDefault("search.all_organizations", true)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.TokenTTL = time.Duration(cfg.App.TokenTTLDays) * 24 * time.Hour
	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSeconds) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSeconds) * time.Second
	return &cfg, nil
}
