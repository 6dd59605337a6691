// Package pagesource supplies rendered-DOM subtrees of the after-hours
// market page to the extractors.
package pagesource

import (
	"context"

	"github.com/Melvillian/after-market/internal/dom"
)

// CSS selectors locating the two subtrees the extractors consume
const (
	// MoversSelector locates the Gainers & Losers table container
	MoversSelector = "div#wsod_marketMoversContainer"
	// QuoteSelector locates the S&P quote fragment
	QuoteSelector = "div#premkContent1"
)

// Source represents one loaded page and hands out rendered-DOM subtrees
// by CSS selector. A missing selector is a typed render error, never nil.
type Source interface {
	// Subtree returns the converted DOM subtree under the first node
	// matching selector
	Subtree(ctx context.Context, selector string) (*dom.Node, error)

	// Close releases the underlying page resources
	Close() error
}
