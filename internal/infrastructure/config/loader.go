package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "RP"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string]string{
	"server.host":              "RP_SERVER_HOST",
	"server.port":              "RP_SERVER_PORT",
	"database.host":            "RP_DB_HOST",
	"database.port":            "RP_DB_PORT",
	"database.username":        "RP_DB_USERNAME",
	"database.password":        "RP_DB_PASSWORD",
	"database.database":        "RP_DB_NAME",
	"database.sslMode":         "RP_DB_SSL_MODE",
	"database.maxOpenConns":    "RP_DB_MAX_OPEN_CONNS",
	"database.maxIdleConns":    "RP_DB_MAX_IDLE_CONNS",
	"database.queryTimeout":    "RP_DB_QUERY_TIMEOUT_SECONDS",
	"database.retryAttempts":   "RP_DB_RETRY_ATTEMPTS",
	"database.seedCatalog":     "RP_DB_SEED_CATALOG",
	"logger.level":             "RP_LOGGER_LEVEL",
	"logger.format":            "RP_LOGGER_FORMAT",
	"fiscal.baseURL":           "RP_FISCAL_BASE_URL",
	"fiscal.requestTimeout":    "RP_FISCAL_REQUEST_TIMEOUT_SECONDS",
	"fiscal.allowMockReceipts": "RP_FISCAL_ALLOW_MOCK_RECEIPTS",
	"matching.fuzzyThreshold":  "RP_MATCHING_FUZZY_THRESHOLD",
}

// LoadConfig loads configuration from configs/<env>.yaml with RP_ environment overrides
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return decode(v, env)
}

// decode applies environment overrides and unmarshals v into a Config
func decode(v *viper.Viper, env string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, envVar := range envBindings {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("bind %s: %w", envVar, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)
	v.SetDefault("server.allowedOrigins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30)
	v.SetDefault("database.connMaxIdleTime", 15)
	v.SetDefault("database.queryTimeout", 5)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1)
	v.SetDefault("database.seedCatalog", false)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("fiscal.baseURL", "https://suf.purs.gov.rs")
	v.SetDefault("fiscal.userAgent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("fiscal.requestTimeout", 10)
	v.SetDefault("fiscal.allowMockReceipts", true)

	v.SetDefault("matching.fuzzyThreshold", 0.8)
}

// getEnvironment determines the environment from RP_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv("RP_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processDurations converts raw second and minute counts into durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Fiscal.RequestTimeout = time.Duration(config.Fiscal.RequestTimeout) * time.Second
}
