package bootstrap

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string        `mapstructure:"SERVER_PORT"`
	RedisUrl         string        `mapstructure:"REDIS_URL"`
	MongoUri         string        `mapstructure:"MONGO_URI"`
	MongoDatabase    string        `mapstructure:"MONGO_DATABASE"`
	IsLocalCors      bool          `mapstructure:"LOCAL_CORS"`
	PageLimitRecords int           `mapstructure:"PAGE_LIMIT_RECORDS"`
	RecordTTL        time.Duration `mapstructure:"RECORD_TTL"`
	DefaultBoardSize int           `mapstructure:"DEFAULT_BOARD_SIZE"`
	DefaultKomi      float64       `mapstructure:"DEFAULT_KOMI"`
}

var defaults = map[string]any{
	"SERVER_PORT":        "8080",
	"REDIS_URL":          "localhost:6379",
	"MONGO_URI":          "mongodb://localhost:27017",
	"MONGO_DATABASE":     "sgf_studio",
	"LOCAL_CORS":         false,
	"PAGE_LIMIT_RECORDS": 20,
	"RECORD_TTL":         "0s",
	"DEFAULT_BOARD_SIZE": 19,
	"DEFAULT_KOMI":       6.5,
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// Setup reads the env-style file at cfgPath. Environment variables override
// the file, and anything missing falls back to the defaults above.
func Setup(cfgPath string) (*Config, error) {
	v := newViper()

	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Defaults builds the configuration from the environment and defaults only.
func Defaults() (*Config, error) {
	var cfg Config
	if err := newViper().Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
