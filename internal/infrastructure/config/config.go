package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"helpdesk-shopify-orders/internal/domain"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment is the runtime environment (development, production)
	Environment string `mapstructure:"APP_ENV" default:"development"`
	LogLevel    string `mapstructure:"LOG_LEVEL" default:"info"`
	Port        string `mapstructure:"PORT" default:"8080"`

	// CORSAllowedOrigins is a comma-separated origin list
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS" default:"*"`

	Mongo   MongoConfig   `mapstructure:",squash"`
	Redis   RedisConfig   `mapstructure:",squash"`
	Shopify ShopifyConfig `mapstructure:",squash"`
}

// MongoConfig holds the MongoDB connection details
type MongoConfig struct {
	URI      string `mapstructure:"MONGODB_URI" default:"mongodb://localhost:27017" required:"true"`
	Database string `mapstructure:"MONGODB_DATABASE" default:"helpdesk" required:"true"`
}

// RedisConfig holds the Result Cache backend. An empty URL selects the in-memory cache.
type RedisConfig struct {
	URL string `mapstructure:"REDIS_URL"`
}

// ShopifyConfig holds the process-wide (Global scope) credentials and client settings
type ShopifyConfig struct {
	ShopDomain  string `mapstructure:"SHOPIFY_SHOP_DOMAIN"`
	AccessToken string `mapstructure:"SHOPIFY_ACCESS_TOKEN"`
	APIVersion  string `mapstructure:"SHOPIFY_API_VERSION"`

	UserAgent            string `mapstructure:"SHOPIFY_USER_AGENT" default:"Helpdesk-Shopify-Integration"`
	MaxOrders            int    `mapstructure:"SHOPIFY_MAX_ORDERS" default:"5"`
	ClientTimeoutSeconds int    `mapstructure:"HTTP_CLIENT_TIMEOUT_SECONDS" default:"30"`
}

// GlobalCredentials returns the Global scope credentials as configured
func (c ShopifyConfig) GlobalCredentials() domain.Credentials {
	return domain.Credentials{
		ShopDomain:  c.ShopDomain,
		AccessToken: c.AccessToken,
		APIVersion:  c.APIVersion,
	}
}

// ClientTimeout returns the total timeout for one Shopify call
func (c ShopifyConfig) ClientTimeout() time.Duration {
	return time.Duration(c.ClientTimeoutSeconds) * time.Second
}

// AllowedOrigins splits CORSAllowedOrigins
func (c *AppConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Load loads configuration from a .env file in path and environment variables.
// Environment variables take precedence.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if config.Shopify.MaxOrders <= 0 {
		return nil, fmt.Errorf("invalid configuration: SHOPIFY_MAX_ORDERS must be positive, got %d", config.Shopify.MaxOrders)
	}
	if config.Shopify.ClientTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid configuration: HTTP_CLIENT_TIMEOUT_SECONDS must be positive, got %d", config.Shopify.ClientTimeoutSeconds)
	}

	return &config, nil
}

// processTags binds every tagged field to its environment key and registers defaults
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks that fields marked as required have non-zero values
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
