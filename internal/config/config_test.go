package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
}

func TestRemoteConfigured(t *testing.T) {
	tests := []struct {
		name    string
		account string
		dbID    string
		token   string
		want    bool
	}{
		{"all set", "acc", "db", "tok", true},
		{"missing account", "", "db", "tok", false},
		{"missing database", "acc", "", "tok", false},
		{"missing token", "acc", "db", "", false},
		{"none", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				CloudflareAccountID: tt.account,
				D1DatabaseID:        tt.dbID,
				D1APIToken:          tt.token,
			}
			assert.Equal(t, tt.want, cfg.RemoteConfigured())
		})
	}
}

func TestSessionSecretChain(t *testing.T) {
	assert.Equal(t, "explicit", (&Config{AuthSecret: "explicit", D1APIToken: "tok"}).SessionSecret())
	assert.Equal(t, "tok", (&Config{D1APIToken: "tok"}).SessionSecret())
	assert.Equal(t, defaultAuthSecret, (&Config{}).SessionSecret())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acc")
	t.Setenv("CLOUDFLARE_D1_DATABASE_ID", "db")
	t.Setenv("CLOUDFLARE_D1_API_TOKEN", "tok")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.True(t, cfg.RemoteConfigured())
}
