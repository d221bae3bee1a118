package config

import (
	"testing"

	"auction/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	registered []string
	admitted   []common.Order
}

func (f *fakeEngine) RegisterSymbol(symbol string) { f.registered = append(f.registered, symbol) }

func (f *fakeEngine) Admit(order common.Order) common.OrderResult {
	f.admitted = append(f.admitted, order)
	return common.OrderResult{Success: true, OrderID: uint64(len(f.admitted))}
}

func TestSeed_RegistersSymbolsAndAdmitsBidsBeforeAsks(t *testing.T) {
	cfg, err := LoadBytes([]byte(fixtureJSON))
	require.NoError(t, err)

	eng := &fakeEngine{}
	Seed(eng, cfg)

	assert.Equal(t, []string{"ACME"}, eng.registered)
	require.Len(t, eng.admitted, 2)
	assert.Equal(t, common.Buy, eng.admitted[0].Side)
	assert.Equal(t, common.Sell, eng.admitted[1].Side)
	assert.Equal(t, "seed", eng.admitted[0].Owner)
	assert.Equal(t, common.Limit, eng.admitted[0].Type)
}
