package store

import (
	"context"

	"github.com/Melvillian/after-market/internal/extract"
)

// Store durably persists capture batches
type Store interface {
	// SaveBatch stores every record of one capture batch
	SaveBatch(ctx context.Context, records []extract.PriceChange) error

	// Close releases the underlying connection
	Close() error
}
