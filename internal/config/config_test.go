package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{`"24h"`, 24 * time.Hour},
		{`"90s"`, 90 * time.Second},
		{`60000000000`, time.Minute},
	}
	for _, test := range tests {
		var d Duration
		require.NoError(t, d.UnmarshalJSON([]byte(test.input)))
		assert.Equal(t, test.want, d.Duration)
	}

	var d Duration
	assert.Error(t, d.UnmarshalJSON([]byte(`"not a duration"`)))
	assert.Error(t, d.UnmarshalJSON([]byte(`true`)))
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"mode": "production",
		"addr": ":8080",
		"postgres": {
			"host": "localhost",
			"port": 5432,
			"user": "mines",
			"password": "secret",
			"db_name": "mines"
		},
		"jwt": {
			"token_lifetime": "24h",
			"private_key_path": "/secrets/jwt-private-key.pem",
			"public_key_path": "/secrets/jwt-public-key.pem"
		},
		"log": {
			"file": "/var/log/mines.log",
			"max_size_mb": 50
		}
	}`), 0644))

	var cfg Config
	require.NoError(t, Read(path, &cfg))

	assert.True(t, cfg.Production())
	assert.False(t, cfg.Development())
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t,
		"host=localhost port=5432 user=mines password=secret dbname=mines",
		cfg.Postgres.DbUrl())
	assert.Equal(t, 24*time.Hour, cfg.Jwt.TokenLifetime.Duration)
	assert.Equal(t, "/var/log/mines.log", cfg.Log.File)
}

func TestReadMissingFile(t *testing.T) {
	var cfg Config
	assert.Error(t, Read("/does/not/exist.json", &cfg))
}
