package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebolotov/itemvault/internal/config"
	"github.com/ebolotov/itemvault/internal/handler"
	"github.com/ebolotov/itemvault/internal/logger"
)

func TestNewServer_NoHTTPAddress(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewHTTPServer_AppliesConfig(t *testing.T) {
	cfg := config.Server{
		HTTPAddress:    "localhost:8080",
		RequestTimeout: config.DefaultRequestTimeout,
	}

	s := newHTTPServer(nil, cfg, logger.Nop())

	require.NotNil(t, s.server)
	assert.Equal(t, "localhost:8080", s.server.Addr)
	assert.Equal(t, config.DefaultRequestTimeout, s.server.ReadTimeout)
	assert.Equal(t, config.DefaultRequestTimeout, s.server.WriteTimeout)
}
