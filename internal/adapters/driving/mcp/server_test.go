package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewServer(t *testing.T) {
	t.Run("nil import service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{}, Config{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingImportService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(newTestPorts(), Config{RateLimit: 5})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil import service returns error", func(t *testing.T) {
		assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingImportService)
	})

	t.Run("import only is valid", func(t *testing.T) {
		ports := newTestPorts()
		ports.Templates = nil
		assert.NoError(t, ports.Validate())
	})
}

func TestNewLimiter(t *testing.T) {
	tests := []struct {
		name      string
		perSecond int
		limit     rate.Limit
		burst     int
	}{
		{name: "disabled", perSecond: 0, limit: rate.Inf, burst: 0},
		{name: "negative", perSecond: -3, limit: rate.Inf, burst: 0},
		{name: "five", perSecond: 5, limit: rate.Limit(5), burst: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := newLimiter(tt.perSecond)
			assert.Equal(t, tt.limit, limiter.Limit())
			assert.Equal(t, tt.burst, limiter.Burst())
		})
	}
}
