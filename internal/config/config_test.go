package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  user: blog
  name: blog
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSizeBytes())
	assert.Equal(t, "blog:@tcp(127.0.0.1:3306)/blog?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.DSNValue())
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
app_url: https://api.example.com/
web_url: https://example.com/
jwt_secret: topsecret
database:
  host: db
  port: 3307
  user: blog
  password: pw
  name: blog
redis:
  host: cache
  port: 6380
storage:
  provider: s3
  s3:
    region: us-east-1
    bucket: media
    access_key: ak
    secret_key: sk
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.IsDev())
	assert.Equal(t, "https://api.example.com", cfg.AppURL)
	assert.Equal(t, "https://example.com", cfg.WebURL)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())
	assert.Equal(t, "s3", cfg.Storage.Provider)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
database:
  user: blog
  name: blog
no_such_key: true
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing database", "port: 3000\n"},
		{"bad provider", "database:\n  user: a\n  name: b\nstorage:\n  provider: ftp\n"},
		{"s3 without creds", "database:\n  user: a\n  name: b\nstorage:\n  provider: s3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestUploadFormatAllowed(t *testing.T) {
	u := UploadConfig{AllowedFormats: []string{"jpg", "png"}}
	assert.True(t, u.FormatAllowed("jpg"))
	assert.True(t, u.FormatAllowed(".PNG"))
	assert.False(t, u.FormatAllowed("exe"))
}
