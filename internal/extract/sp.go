package extract

import (
	"strings"
	"time"

	"github.com/Melvillian/after-market/internal/dom"
	apperr "github.com/Melvillian/after-market/pkg/errors"
)

// CSS classes of the S&P quote fragment. Both are compound class strings
// matched verbatim against the whole class attribute.
const (
	classFutureQuote = "wsod_futureQuote wsod_futureQuoteFirst"
	classBoldRight   = "wsod_bold wsod_aRight"
)

// ExtractSP locates the S&P 500 after-hours percentage change inside the
// quote fragment and returns a single record with symbol "S&P". The
// fragment's internal structure differs from the movers table, so the
// final step is a free-text search for the first %-containing text node
// rather than a class lookup.
func ExtractSP(root *dom.Node, capturedAt time.Time) (PriceChange, error) {
	quote := dom.FindByClass(root, classFutureQuote)
	if quote == nil {
		return PriceChange{}, apperr.NewMissingField("S&P fragment: no " + classFutureQuote)
	}

	changes := dom.FindByClass(quote, classBoldRight)
	if changes == nil {
		return PriceChange{}, apperr.NewMissingField("S&P fragment: no " + classBoldRight)
	}

	pctNode := dom.FindFirst(changes, func(n *dom.Node) bool {
		return n.IsText() && strings.Contains(n.Value, "%")
	})
	if pctNode == nil {
		return PriceChange{}, apperr.NewMissingField("S&P fragment: no percentage text")
	}

	pct, err := ParsePercent(pctNode.Value)
	if err != nil {
		return PriceChange{}, apperr.NewParse("S&P percentage", err)
	}

	return PriceChange{
		Symbol:     SPSymbol,
		Percentage: pct,
		CapturedAt: capturedAt,
	}, nil
}
