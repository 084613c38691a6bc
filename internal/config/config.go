package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Upstream struct {
		BaseURL        string `mapstructure:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"upstream"`

	JWT struct {
		Secret string `mapstructure:"secret"`
		Issuer string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Redis struct {
		Addr       string `mapstructure:"addr"`
		Password   string `mapstructure:"password"`
		DB         int    `mapstructure:"db"`
		TTLSeconds int    `mapstructure:"ttl_seconds"`
	} `mapstructure:"redis"`

	Archive struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
	} `mapstructure:"archive"`

	View struct {
		PageSize int `mapstructure:"page_size"`
	} `mapstructure:"view"`

	Monitoring struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"monitoring"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("upstream.base_url", "http://localhost:8000")
	v.SetDefault("upstream.timeout_seconds", 15)
	v.SetDefault("jwt.issuer", "shipdash-backend")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl_seconds", 60)
	v.SetDefault("view.page_size", 10)
	v.SetDefault("monitoring.port", 9090)
	v.SetDefault("archive.region", "auto")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override upstream settings from environment
	if base := os.Getenv("UPSTREAM_BASE_URL"); base != "" {
		cfg.Upstream.BaseURL = base
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	// JWT secret is shared with the upstream auth service so this
	// service can validate the tokens it mints
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not set in config or environment")
		}
	}

	// Archive credentials come from environment only
	if key := os.Getenv("ARCHIVE_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("ARCHIVE_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}
	if bucket := os.Getenv("ARCHIVE_BUCKET"); bucket != "" {
		cfg.Archive.Bucket = bucket
	}
	if endpoint := os.Getenv("ARCHIVE_ENDPOINT"); endpoint != "" {
		cfg.Archive.Endpoint = endpoint
	}
	if cfg.Archive.Enabled && (cfg.Archive.AccessKey == "" || cfg.Archive.Bucket == "") {
		log.Printf("[Config] Archive enabled but credentials incomplete, disabling")
		cfg.Archive.Enabled = false
	}

	if cfg.View.PageSize < 1 {
		cfg.View.PageSize = 10
	}
	if n, err := strconv.Atoi(os.Getenv("PORT")); err == nil && n > 0 {
		cfg.Server.Port = n
	}

	return &cfg
}
