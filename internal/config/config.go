package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Shopify     ShopifyConfig
	LogLevel    string
	AppURL      string // CLOUDFLARE_URL: public base URL of this app, used to build the OAuth redirect URI
}

type DatabaseConfig struct {
	URL      string // DATABASE_URL; when set it wins over the discrete fields
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ShopifyConfig holds the app credentials issued by the Shopify Partners dashboard
type ShopifyConfig struct {
	APIKey     string // SHOPIFY_API_KEY (OAuth client id)
	APISecret  string // SHOPIFY_API_SECRET (HMAC + token exchange secret)
	Scopes     string // SCOPES, comma separated
	APIVersion string
}

// RedirectURI is where Shopify sends the browser after the merchant approves the install
func (c *Config) RedirectURI() string {
	return c.AppURL + "/auth"
}

// DSN returns the lib/pq connection string
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHOPIFY_API_VERSION", "2023-04")

	// Read from environment variables
	viper.AutomaticEnv()

	// .env is optional
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			URL:      strings.TrimSpace(getEnvOrViper("DATABASE_URL", "")),
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			APIKey:     strings.TrimSpace(getEnvOrViper("SHOPIFY_API_KEY", "")),
			APISecret:  strings.TrimSpace(getEnvOrViper("SHOPIFY_API_SECRET", "")),
			Scopes:     strings.TrimSpace(getEnvOrViper("SCOPES", "")),
			APIVersion: getEnvOrViper("SHOPIFY_API_VERSION", "2023-04"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
		AppURL:   strings.TrimSuffix(strings.TrimSpace(getEnvOrViper("CLOUDFLARE_URL", "")), "/"),
	}

	return cfg, nil
}

// ValidateShopify checks the options the OAuth flow cannot work without.
// SHOPIFY_API_SECRET is checked per request by the install handler, not here.
func (c *Config) ValidateShopify() error {
	if c.Shopify.APIKey == "" {
		return fmt.Errorf("SHOPIFY_API_KEY is required")
	}
	if c.AppURL == "" {
		return fmt.Errorf("CLOUDFLARE_URL is required")
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
