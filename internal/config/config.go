// Package config provides the structures and loader for service configuration.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the top-level configuration for the platform API.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	RabbitConnection        string `yaml:"rabbit_connection" env:"RABBIT_CONNECTION"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Subdomains              `yaml:"subdomains"`
	MediaStorage            `yaml:"media_storage"`
}

// HTTPServer holds server listen address and timeouts.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"ADDRESS_HTTP" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection holds redis client settings.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"ADDRESS_REDIS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken holds the session token signing settings.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Subdomains lists the base URLs of the platform's front-end apps. The
// session bridge resolves post-login destinations against these, never
// against caller-supplied hosts.
type Subdomains struct {
	AuthURL   string `yaml:"auth_url" env:"AUTH_URL" env-default:"https://auth.bventy.in"`
	AppURL    string `yaml:"app_url" env:"APP_URL" env-default:"https://app.bventy.in"`
	AdminURL  string `yaml:"admin_url" env:"ADMIN_URL" env-default:"https://admin.bventy.in"`
	VendorURL string `yaml:"vendor_url" env:"VENDOR_URL" env-default:"https://vendor.bventy.in"`
	WWWURL    string `yaml:"www_url" env:"WWW_URL" env-default:"https://www.bventy.in"`
}

// MediaStorage holds the S3-compatible object store settings for uploads.
type MediaStorage struct {
	Endpoint  string `yaml:"endpoint" env:"MEDIA_ENDPOINT"`
	Region    string `yaml:"region" env-default:"auto"`
	Bucket    string `yaml:"bucket" env:"MEDIA_BUCKET"`
	AccessKey string `yaml:"access_key" env:"MEDIA_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MEDIA_SECRET_KEY"`
	PublicURL string `yaml:"public_url" env:"MEDIA_PUBLIC_URL"`
}

// MustLoad reads the config file pointed to by CONFIG_PATH and exits the
// process if it is missing or unreadable.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
