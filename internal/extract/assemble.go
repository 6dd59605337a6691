package extract

import "time"

// Assemble concatenates mover records (in their extracted order) followed
// by the S&P record into one capture batch, restamping every record with
// the single batch timestamp so downstream queries can group by capture.
func Assemble(capturedAt time.Time, movers []PriceChange, sp PriceChange) []PriceChange {
	batch := make([]PriceChange, 0, len(movers)+1)
	for _, m := range movers {
		m.CapturedAt = capturedAt
		batch = append(batch, m)
	}
	sp.CapturedAt = capturedAt
	batch = append(batch, sp)
	return batch
}
