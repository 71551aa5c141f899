package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the application configuration, loaded from a YAML file with
// environment variable overrides.
type Config struct {
	App struct {
		Name string `yaml:"name"`
		Env  string `yaml:"env"`
	} `yaml:"app"`

	DataSources struct {
		AlphaVantage struct {
			APIKey  string   `yaml:"api_key"`
			BaseURL string   `yaml:"base_url"`
			Timeout Duration `yaml:"timeout"`
		} `yaml:"alphavantage"`
	} `yaml:"data_sources"`

	Database struct {
		Postgres struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			DBName   string `yaml:"dbname"`
			SSLMode  string `yaml:"sslmode"`
		} `yaml:"postgres"`
	} `yaml:"database"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	API struct {
		Port         string   `yaml:"port"`
		ReadTimeout  Duration `yaml:"read_timeout"`
		WriteTimeout Duration `yaml:"write_timeout"`
	} `yaml:"api"`

	Auth struct {
		JWTSecret string   `yaml:"jwt_secret"`
		TokenTTL  Duration `yaml:"token_ttl"`
	} `yaml:"auth"`

	Monitor struct {
		PollInterval Duration `yaml:"poll_interval"`
		QuoteTimeout Duration `yaml:"quote_timeout"`
		MetricsPort  string   `yaml:"metrics_port"`
	} `yaml:"monitor"`

	Email struct {
		From           string `yaml:"from"`
		SendGridAPIKey string `yaml:"sendgrid_api_key"`
	} `yaml:"email"`
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	overrideFromEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

// Validate checks the settings that must be present before the process can
// do anything useful. A missing provider key or JWT secret is fatal at
// startup, not per-tick.
func (c *Config) Validate() error {
	if c.DataSources.AlphaVantage.APIKey == "" {
		return fmt.Errorf("alphavantage api_key is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth jwt_secret is required")
	}
	return nil
}

// overrideFromEnv applies environment variable overrides.
func overrideFromEnv(config *Config) {
	if env := os.Getenv("APP_NAME"); env != "" {
		config.App.Name = env
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		config.App.Env = env
	}

	if env := os.Getenv("ALPHAVANTAGE_API_KEY"); env != "" {
		config.DataSources.AlphaVantage.APIKey = env
	}
	if env := os.Getenv("ALPHAVANTAGE_BASE_URL"); env != "" {
		config.DataSources.AlphaVantage.BaseURL = env
	}

	if env := os.Getenv("DB_HOST"); env != "" {
		config.Database.Postgres.Host = env
	}
	if env := os.Getenv("DB_PORT"); env != "" {
		if port, err := strconv.Atoi(env); err == nil && port > 0 {
			config.Database.Postgres.Port = port
		}
	}
	if env := os.Getenv("DB_USER"); env != "" {
		config.Database.Postgres.User = env
	}
	if env := os.Getenv("DB_PASSWORD"); env != "" {
		config.Database.Postgres.Password = env
	}
	if env := os.Getenv("DB_NAME"); env != "" {
		config.Database.Postgres.DBName = env
	}

	if env := os.Getenv("NATS_URL"); env != "" {
		config.NATS.URL = env
	}

	if env := os.Getenv("API_PORT"); env != "" {
		config.API.Port = env
	}

	if env := os.Getenv("JWT_SECRET"); env != "" {
		config.Auth.JWTSecret = env
	}

	if env := os.Getenv("MONITOR_POLL_INTERVAL"); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			config.Monitor.PollInterval = Duration(d)
		}
	}
	if env := os.Getenv("MONITOR_QUOTE_TIMEOUT"); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			config.Monitor.QuoteTimeout = Duration(d)
		}
	}

	if env := os.Getenv("SENDGRID_API_KEY"); env != "" {
		config.Email.SendGridAPIKey = env
	}
	if env := os.Getenv("EMAIL_FROM"); env != "" {
		config.Email.From = env
	}
}

// applyDefaults fills settings the config file may omit.
func applyDefaults(config *Config) {
	if config.DataSources.AlphaVantage.BaseURL == "" {
		config.DataSources.AlphaVantage.BaseURL = "https://www.alphavantage.co/query"
	}
	if config.DataSources.AlphaVantage.Timeout <= 0 {
		config.DataSources.AlphaVantage.Timeout = Duration(10 * time.Second)
	}
	if config.API.Port == "" {
		config.API.Port = "8080"
	}
	if config.Auth.TokenTTL <= 0 {
		config.Auth.TokenTTL = Duration(24 * time.Hour)
	}
	if config.Monitor.PollInterval <= 0 {
		config.Monitor.PollInterval = Duration(time.Minute)
	}
	if config.Monitor.QuoteTimeout <= 0 {
		config.Monitor.QuoteTimeout = Duration(10 * time.Second)
	}
	if config.Monitor.MetricsPort == "" {
		config.Monitor.MetricsPort = "9090"
	}
}

// GetDefaultConfigPath returns the config path for the current environment.
func GetDefaultConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	return fmt.Sprintf("configs/%s/app.yaml", env)
}
