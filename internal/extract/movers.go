package extract

import (
	"fmt"
	"time"

	"github.com/Melvillian/after-market/internal/dom"
	apperr "github.com/Melvillian/after-market/pkg/errors"
)

// headerCaption marks the header row of the Gainers & Losers table
const headerCaption = "Gainers & Losers"

// CSS classes the market-movers table marks its columns with
const (
	classFirstCol  = "wsod_firstCol"
	classPosChange = "posChangePct"
	classNegChange = "negChangePct"
)

// LoserPolicy decides what happens when a loser row is reached. The page
// normally lists gainers first, so LoserStop treats the first loser as the
// end of the gainers section; LoserSkip keeps scanning in case losers are
// interleaved.
type LoserPolicy int

const (
	// LoserStop terminates the scan at the first loser row
	LoserStop LoserPolicy = iota
	// LoserSkip skips loser rows and keeps scanning
	LoserSkip
)

// ParseLoserPolicy converts a configuration string into a LoserPolicy
func ParseLoserPolicy(s string) (LoserPolicy, error) {
	switch s {
	case "stop":
		return LoserStop, nil
	case "skip":
		return LoserSkip, nil
	default:
		return LoserStop, apperr.NewConfiguration(fmt.Sprintf("unknown loser policy %q", s), nil)
	}
}

// ExtractMovers walks the Gainers & Losers table body and returns one
// record per gainer row, in document order. The header row is skipped;
// loser rows are handled per policy. Any structural miss or parse failure
// fails the whole batch, no partial output is returned.
func ExtractMovers(tbody *dom.Node, capturedAt time.Time, policy LoserPolicy) ([]PriceChange, error) {
	if tbody == nil {
		return nil, apperr.NewMissingField("movers table body")
	}

	var records []PriceChange

	for i, row := range tbody.Children {
		header := dom.FindFirst(row, func(n *dom.Node) bool {
			return n.IsText() && n.Value == headerCaption
		})
		if header != nil {
			continue
		}

		firstCol := dom.FindByClass(row, classFirstCol)
		if firstCol == nil {
			return nil, apperr.NewMissingField(fmt.Sprintf("row %d: no %s column", i, classFirstCol))
		}
		symbolNode := dom.FindByTag(firstCol, dom.TextTag)
		if symbolNode == nil {
			return nil, apperr.NewMissingField(fmt.Sprintf("row %d: no ticker symbol text in %s", i, classFirstCol))
		}

		if dom.FindByClass(row, classNegChange) != nil {
			if policy == LoserStop {
				break
			}
			continue
		}

		posCol := dom.FindByClass(row, classPosChange)
		if posCol == nil {
			return nil, apperr.NewMissingField(fmt.Sprintf("row %d (%s): no %s column", i, symbolNode.Value, classPosChange))
		}
		pctNode := dom.FindByTag(posCol, dom.TextTag)
		if pctNode == nil {
			return nil, apperr.NewMissingField(fmt.Sprintf("row %d (%s): no percentage text in %s", i, symbolNode.Value, classPosChange))
		}

		pct, err := ParsePercent(pctNode.Value)
		if err != nil {
			return nil, apperr.NewParse(fmt.Sprintf("row %d (%s)", i, symbolNode.Value), err)
		}

		records = append(records, PriceChange{
			Symbol:     symbolNode.Value,
			Percentage: pct,
			CapturedAt: capturedAt,
		})
	}

	return records, nil
}
