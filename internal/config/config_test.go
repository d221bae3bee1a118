package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureJSON = `{
  "symbols": [
    {
      "symbol": "ACME",
      "initialDepth": {
        "bids": [{"price": 99.5, "quantity": 100}],
        "asks": [{"price": 100.5, "quantity": 100}]
      }
    }
  ],
  "simulation": {
    "enabled": true,
    "intervalMs": 250,
    "minOrderSize": 1,
    "maxOrderSize": 50,
    "priceVariance": 0.25
  }
}`

func TestLoadBytes_RoundTripsFixture(t *testing.T) {
	cfg, err := LoadBytes([]byte(fixtureJSON))
	require.NoError(t, err)

	require.Len(t, cfg.Symbols, 1)
	assert.Equal(t, "ACME", cfg.Symbols[0].Symbol)
	assert.Equal(t, 99.5, cfg.Symbols[0].InitialDepth.Bids[0].Price)
	assert.Equal(t, uint32(100), cfg.Symbols[0].InitialDepth.Asks[0].Quantity)
	assert.Equal(t, 250, cfg.Simulation.IntervalMs)
}

func TestLoadBytes_AppliesSimulationDefaultsWhenOmitted(t *testing.T) {
	cfg, err := LoadBytes([]byte(`{"symbols":[{"symbol":"ACME"}]}`))
	require.NoError(t, err)

	assert.True(t, cfg.Simulation.Enabled)
	assert.Equal(t, 1000, cfg.Simulation.IntervalMs)
	assert.Equal(t, uint32(10), cfg.Simulation.MinOrderSize)
	assert.Equal(t, uint32(100), cfg.Simulation.MaxOrderSize)
}

func TestLoadBytes_RejectsNoSymbols(t *testing.T) {
	_, err := LoadBytes([]byte(`{"symbols":[]}`))
	assert.Error(t, err)
}

func TestLoadBytes_RejectsMalformedJSON(t *testing.T) {
	_, err := LoadBytes([]byte(`not json`))
	assert.Error(t, err)
}
