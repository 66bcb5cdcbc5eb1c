package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("CLIENT_ORIGIN", "http://chat.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, uint16(9001), cfg.HttpServerPort)
	assert.Equal(t, "http://chat.example.com", cfg.ClientOrigin)
}

func TestLoadConfigRejectsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "0")
	t.Setenv("CLIENT_ORIGIN", "http://localhost:5173")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsInvalidOrigin(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("CLIENT_ORIGIN", "not a url")

	_, err := LoadConfig()
	require.Error(t, err)
}
