package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/parathan/blog-core/internal/pkg/mail"
)

// Config is the fully loaded application configuration.
type Config struct {
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`

	// AppURL is the public base URL of this API, used to build links in
	// emails and uploaded-file URLs.
	AppURL string `yaml:"app_url"`
	// WebURL is the frontend origin, used for CORS and email links that
	// land on frontend pages.
	WebURL string `yaml:"web_url"`

	JWTSecret string `yaml:"jwt_secret"`

	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Mail     mail.Config    `yaml:"mail"`
	Storage  StorageConfig  `yaml:"storage"`
	Upload   UploadConfig   `yaml:"upload"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Params   string `yaml:"params"`
}

// DSNValue builds the go-sql-driver DSN from the discrete fields.
func (d DatabaseConfig) DSNValue() string {
	charset := d.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name, charset)
	if d.Params != "" {
		dsn += "&" + d.Params
	}
	return dsn
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Addr returns the host:port pair for the redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// URLValue builds the redis connection URL.
func (r RedisConfig) URLValue() string {
	if r.Password != "" {
		return fmt.Sprintf("redis://:%s@%s/%d", r.Password, r.Addr(), r.DB)
	}
	return fmt.Sprintf("redis://%s/%d", r.Addr(), r.DB)
}

type StorageConfig struct {
	// Provider selects the backend: "local" or "s3".
	Provider string `yaml:"provider"`

	Local LocalStorageConfig `yaml:"local"`
	S3    S3StorageConfig    `yaml:"s3"`
}

type LocalStorageConfig struct {
	// Dir is the directory uploaded files are written to.
	Dir string `yaml:"dir"`
}

type S3StorageConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	CustomDomain string `yaml:"custom_domain"`
	PathStyle    bool   `yaml:"path_style"`
}

type UploadConfig struct {
	// AllowedFormats are lowercase file extensions without the dot.
	AllowedFormats []string `yaml:"allowed_formats"`
	MaxSizeMB      int64    `yaml:"max_size_mb"`
}

// FormatAllowed reports whether ext (without dot, any case) may be uploaded.
func (u UploadConfig) FormatAllowed(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, f := range u.AllowedFormats {
		if f == ext {
			return true
		}
	}
	return false
}

// MaxSizeBytes returns the upload size cap in bytes.
func (u UploadConfig) MaxSizeBytes() int64 {
	return u.MaxSizeMB * 1024 * 1024
}

// IsDev reports whether the app runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env != "production"
}

// Load reads and validates the YAML config at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaults()
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:   3000,
		Env:    "development",
		AppURL: "http://localhost:3000",
		WebURL: "http://localhost:5173",
		Database: DatabaseConfig{
			Host:    "127.0.0.1",
			Port:    3306,
			Charset: "utf8mb4",
		},
		Redis: RedisConfig{
			Host: "127.0.0.1",
			Port: 6379,
		},
		Storage: StorageConfig{
			Provider: "local",
			Local:    LocalStorageConfig{Dir: "./uploads"},
		},
		Upload: UploadConfig{
			AllowedFormats: []string{"jpg", "jpeg", "png", "gif", "webp"},
			MaxSizeMB:      5,
		},
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Database.User == "" || c.Database.Name == "" {
		return fmt.Errorf("database user and name are required")
	}
	switch c.Storage.Provider {
	case "local":
		if c.Storage.Local.Dir == "" {
			return fmt.Errorf("storage.local.dir is required for the local provider")
		}
	case "s3":
		s3 := c.Storage.S3
		if s3.Bucket == "" || s3.AccessKey == "" || s3.SecretKey == "" {
			return fmt.Errorf("storage.s3 bucket, access_key and secret_key are required")
		}
	default:
		return fmt.Errorf("unknown storage provider %q", c.Storage.Provider)
	}
	c.AppURL = strings.TrimRight(c.AppURL, "/")
	c.WebURL = strings.TrimRight(c.WebURL, "/")
	return nil
}
