package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"readTimeout"`
		WriteTimeout    time.Duration `yaml:"writeTimeout"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
		CORSOrigins     []string      `yaml:"corsOrigins"`
	} `yaml:"server"`

	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres | sqlite
		DSN      string `yaml:"dsn"`    // overrides the discrete fields when set
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
		Path     string `yaml:"path"` // sqlite file
	} `yaml:"database"`

	// Redis, when set, replaces the SQL table as the snapshot cache.
	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI struct {
		Provider string `yaml:"provider"` // gemini | openai | anthropic
		Model    string `yaml:"model"`
		APIKey   string `yaml:"apiKey"`
		BaseURL  string `yaml:"baseURL"`
	} `yaml:"ai"`

	Scraper struct {
		Mode         string        `yaml:"mode"` // browser | web | demo
		Headless     bool          `yaml:"headless"`
		Timeout      time.Duration `yaml:"timeout"`
		DemoFallback bool          `yaml:"demoFallback"`
	} `yaml:"scraper"`

	Pipeline struct {
		OCRCap      int           `yaml:"ocrCap"`
		SingleTTL   time.Duration `yaml:"singleTTL"`
		BatchTTL    time.Duration `yaml:"batchTTL"`
		BatchPacing time.Duration `yaml:"batchPacing"`
		MaxBatch    int           `yaml:"maxBatch"`
	} `yaml:"pipeline"`

	Auth struct {
		// APIKeys maps a client name to its key. Empty disables auth.
		APIKeys map[string]string `yaml:"apiKeys"`
	} `yaml:"auth"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"` // tokens per second
	} `yaml:"rateLimit"`

	Cleanup struct {
		Schedule string `yaml:"schedule"`
	} `yaml:"cleanup"`
}

// Default returns a config usable for local runs: sqlite, demo scraper, no auth.
func Default() *Config {
	var c Config
	c.Server.Port = 8080
	c.Server.ReadTimeout = 15 * time.Second
	c.Server.WriteTimeout = 10 * time.Minute
	c.Server.ShutdownTimeout = 30 * time.Second
	c.Log.Level = "info"
	c.Database.Driver = "sqlite"
	c.Database.Path = "leadscope.db"
	c.Database.SSLMode = "disable"
	c.Minio.Region = "us-east-1"
	c.AI.Provider = "gemini"
	c.Scraper.Mode = "demo"
	c.Scraper.Headless = true
	c.Scraper.Timeout = 45 * time.Second
	c.Pipeline.OCRCap = 3
	c.Pipeline.SingleTTL = time.Hour
	c.Pipeline.BatchTTL = 24 * time.Hour
	c.Pipeline.BatchPacing = 2 * time.Second
	c.Pipeline.MaxBatch = 50
	c.RateLimit.Capacity = 30
	c.RateLimit.RefillRate = 1
	c.Cleanup.Schedule = "@every 15m"
	return &c
}

// Load baca file config.yaml di atas default, lalu override dari environment.
// A missing file is not an error; the defaults and env still apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.AI.Provider, "AI_PROVIDER")
	set(&c.AI.Model, "AI_MODEL")
	if c.AI.APIKey == "" {
		switch c.AI.Provider {
		case "openai":
			set(&c.AI.APIKey, "OPENAI_API_KEY")
		case "anthropic":
			set(&c.AI.APIKey, "ANTHROPIC_API_KEY")
		default:
			set(&c.AI.APIKey, "GEMINI_API_KEY")
		}
	}
	set(&c.Database.Driver, "DATABASE_DRIVER")
	set(&c.Database.DSN, "DATABASE_DSN")
	set(&c.Redis.URL, "REDIS_URL")
	set(&c.Scraper.Mode, "SCRAPER_MODE")
	set(&c.Log.Level, "LOG_LEVEL")

	// API_KEYS=name:key,name2:key2
	if v := strings.TrimSpace(getenv("API_KEYS")); v != "" {
		keys := map[string]string{}
		for _, pair := range strings.Split(v, ",") {
			name, key, ok := strings.Cut(strings.TrimSpace(pair), ":")
			if !ok {
				name, key = "default", name
			}
			if key != "" {
				keys[name] = key
			}
		}
		c.Auth.APIKeys = keys
	}
}

// Validate runs once at startup; a missing provider key is fatal here rather
// than at the first request.
func (c *Config) Validate() error {
	var errs []error
	switch c.AI.Provider {
	case "gemini", "openai", "anthropic":
		if strings.TrimSpace(c.AI.APIKey) == "" {
			errs = append(errs, fmt.Errorf("ai.apiKey is required for provider %q", c.AI.Provider))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ai.provider %q (allowed: gemini, openai, anthropic)", c.AI.Provider))
	}
	switch c.Database.Driver {
	case "mysql", "postgres":
		if c.Database.DSN == "" && c.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.host or database.dsn is required for %s", c.Database.Driver))
		}
	case "sqlite":
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database.driver %q (allowed: mysql, postgres, sqlite)", c.Database.Driver))
	}
	switch c.Scraper.Mode {
	case "browser", "web", "demo":
	default:
		errs = append(errs, fmt.Errorf("unknown scraper.mode %q (allowed: browser, web, demo)", c.Scraper.Mode))
	}
	if c.Minio.Enabled && (c.Minio.Endpoint == "" || c.Minio.BucketName == "") {
		errs = append(errs, errors.New("minio.endpoint and minio.bucketName are required when minio is enabled"))
	}
	if c.Pipeline.OCRCap < 0 || c.Pipeline.MaxBatch < 1 {
		errs = append(errs, errors.New("pipeline.ocrCap must be >= 0 and pipeline.maxBatch >= 1"))
	}
	if c.Server.Port <= 0 {
		errs = append(errs, errors.New("server.port must be positive"))
	}
	return errors.Join(errs...)
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

func (c *Config) PostgresDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	sslmode := c.Database.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name, sslmode)
}
