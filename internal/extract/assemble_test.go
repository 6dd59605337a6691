package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	movers := []PriceChange{
		{Symbol: "AAPL", Percentage: 1.23},
		{Symbol: "MSFT", Percentage: 0.50},
		{Symbol: "NVDA", Percentage: 4.10},
	}
	sp := PriceChange{Symbol: SPSymbol, Percentage: -0.71}

	batch := Assemble(testCapturedAt, movers, sp)

	require.Len(t, batch, len(movers)+1)

	// Mover order is preserved, S&P comes last
	assert.Equal(t, "AAPL", batch[0].Symbol)
	assert.Equal(t, "MSFT", batch[1].Symbol)
	assert.Equal(t, "NVDA", batch[2].Symbol)
	assert.Equal(t, SPSymbol, batch[3].Symbol)

	// Every record carries the single batch timestamp
	for _, r := range batch {
		assert.Equal(t, testCapturedAt, r.CapturedAt)
	}
}

func TestAssembleRestampsStragglers(t *testing.T) {
	// Records stamped with a different time still end up on the batch
	// timestamp after assembly
	other := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	movers := []PriceChange{{Symbol: "AAPL", Percentage: 1.0, CapturedAt: other}}
	sp := PriceChange{Symbol: SPSymbol, Percentage: -1.0, CapturedAt: other}

	batch := Assemble(testCapturedAt, movers, sp)
	for _, r := range batch {
		assert.Equal(t, testCapturedAt, r.CapturedAt)
	}
}

func TestAssembleNoMovers(t *testing.T) {
	sp := PriceChange{Symbol: SPSymbol, Percentage: -0.71}
	batch := Assemble(testCapturedAt, nil, sp)

	require.Len(t, batch, 1)
	assert.Equal(t, SPSymbol, batch[0].Symbol)
}
