// Package extract turns rendered-DOM subtrees of the after-hours market
// page into price-change records.
package extract

import "time"

// SPSymbol is the symbol recorded for the S&P 500 index snapshot
const SPSymbol = "S&P"

// PriceChange is one extracted after-hours observation. Percentage keeps
// the sign of the displayed value (7.06 for "+7.06%", -3.99 for "-3.99%").
// Every record in a capture batch carries the identical CapturedAt.
type PriceChange struct {
	Symbol     string    `json:"symbol"`
	Percentage float64   `json:"percentage"`
	CapturedAt time.Time `json:"captured_at"`
}
