package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendFile      = "file"
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendFirestore = "firestore"
)

type Config struct {
	ProjectID        string `mapstructure:"projectid"`
	LogLevel         string `mapstructure:"loglevel"`
	LogFile          string `mapstructure:"logfile"`
	StoreBackend     string `mapstructure:"storebackend"`
	StoreDir         string `mapstructure:"storedir"`
	StoreNamespace   string `mapstructure:"storenamespace"`
	StoreKey         string `mapstructure:"storekey"`
	RedisAddr        string `mapstructure:"redisaddr"`
	RedisPassword    string `mapstructure:"redispassword"`
	RedisDB          int    `mapstructure:"redisdb"`
	AuthEnabled      bool   `mapstructure:"authenabled"`
	Reconcile        bool   `mapstructure:"reconcile"`
	HTTPAddr         string `mapstructure:"httpaddr"`
	SessionCacheSize int    `mapstructure:"sessioncachesize"`
}

// New reads the configuration from the environment.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		// Without a config file Load only fails on invalid values.
		return defaults()
	}
	return cfg
}

// Load reads the configuration from the environment, layered over the file
// at path when path is not empty. Environment variables use the upper-case
// key names, e.g. STOREBACKEND.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendMemory, BackendRedis, BackendFirestore:
	default:
		return fmt.Errorf("storebackend must be one of: file, memory, redis, firestore (got %q)", c.StoreBackend)
	}
	if c.StoreKey == "" {
		return fmt.Errorf("storekey must not be empty")
	}
	if c.SessionCacheSize <= 0 {
		return fmt.Errorf("sessioncachesize must be > 0")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := defaults()
	v.SetDefault("projectid", d.ProjectID)
	v.SetDefault("loglevel", d.LogLevel)
	v.SetDefault("logfile", d.LogFile)
	v.SetDefault("storebackend", d.StoreBackend)
	v.SetDefault("storedir", d.StoreDir)
	v.SetDefault("storenamespace", d.StoreNamespace)
	v.SetDefault("storekey", d.StoreKey)
	v.SetDefault("redisaddr", d.RedisAddr)
	v.SetDefault("redispassword", d.RedisPassword)
	v.SetDefault("redisdb", d.RedisDB)
	v.SetDefault("authenabled", d.AuthEnabled)
	v.SetDefault("reconcile", d.Reconcile)
	v.SetDefault("httpaddr", d.HTTPAddr)
	v.SetDefault("sessioncachesize", d.SessionCacheSize)
}

func defaults() *Config {
	return &Config{
		LogLevel:         "info",
		StoreBackend:     BackendFile,
		StoreDir:         defaultStoreDir(),
		StoreNamespace:   "dragonstream",
		StoreKey:         "widget_config_v2",
		RedisAddr:        "localhost:6379",
		HTTPAddr:         ":8080",
		SessionCacheSize: 128,
	}
}

func defaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dragonstream"
	}
	return filepath.Join(home, ".dragonstream")
}
