package extract

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/Melvillian/after-market/internal/dom"
	apperr "github.com/Melvillian/after-market/pkg/errors"
)

var testCapturedAt = time.Date(2026, 8, 21, 20, 30, 0, 0, time.UTC)

const headerRow = `<tr><th colspan="3">Gainers &amp; Losers</th></tr>`

func gainerRow(symbol, pct string) string {
	return fmt.Sprintf(`<tr><td class="wsod_firstCol">%s</td><td>12.34</td><td class="posChangePct">%s</td></tr>`, symbol, pct)
}

func loserRow(symbol, pct string) string {
	return fmt.Sprintf(`<tr><td class="wsod_firstCol">%s</td><td>12.34</td><td class="negChangePct">%s</td></tr>`, symbol, pct)
}

func tbodyFromRows(t *testing.T, rows ...string) *dom.Node {
	t.Helper()
	src := "<table><tbody>" + strings.Join(rows, "") + "</tbody></table>"
	root, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	tbody := dom.FindByTag(dom.FromHTML(root), "TBODY")
	require.NotNil(t, tbody)
	return tbody
}

func TestExtractMoversStopsAtFirstLoser(t *testing.T) {
	tbody := tbodyFromRows(t,
		headerRow,
		gainerRow("AAPL", "+1.23%"),
		gainerRow("MSFT", "+0.50%"),
		loserRow("TSLA", "-2.00%"),
		gainerRow("GOOG", "+3.00%"),
	)

	records, err := ExtractMovers(tbody, testCapturedAt, LoserStop)
	require.NoError(t, err)

	// The first loser ends the gainers section; GOOG after it is ignored
	require.Len(t, records, 2)
	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, 1.23, records[0].Percentage)
	assert.Equal(t, "MSFT", records[1].Symbol)
	assert.Equal(t, 0.50, records[1].Percentage)
}

func TestExtractMoversSkipPolicy(t *testing.T) {
	tbody := tbodyFromRows(t,
		headerRow,
		gainerRow("AAPL", "+1.23%"),
		loserRow("TSLA", "-2.00%"),
		gainerRow("GOOG", "+3.00%"),
	)

	records, err := ExtractMovers(tbody, testCapturedAt, LoserSkip)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "AAPL", records[0].Symbol)
	assert.Equal(t, "GOOG", records[1].Symbol)
}

func TestExtractMoversNoHeaderRow(t *testing.T) {
	// Without a header row every row is a data row
	tbody := tbodyFromRows(t,
		gainerRow("AAPL", "+1.23%"),
		gainerRow("MSFT", "+0.50%"),
	)

	records, err := ExtractMovers(tbody, testCapturedAt, LoserStop)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestExtractMoversSharedTimestamp(t *testing.T) {
	tbody := tbodyFromRows(t,
		gainerRow("AAPL", "+1.23%"),
		gainerRow("MSFT", "+0.50%"),
	)

	records, err := ExtractMovers(tbody, testCapturedAt, LoserStop)
	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, testCapturedAt, r.CapturedAt)
	}
}

func TestExtractMoversMissingFirstCol(t *testing.T) {
	tbody := tbodyFromRows(t,
		headerRow,
		gainerRow("AAPL", "+1.23%"),
		`<tr><td>no symbol column</td><td class="posChangePct">+1.00%</td></tr>`,
	)

	records, err := ExtractMovers(tbody, testCapturedAt, LoserStop)
	// The whole batch fails, no partial list is returned
	assert.Nil(t, records)
	assert.True(t, apperr.IsMissingField(err))
}

func TestExtractMoversMissingChangeColumn(t *testing.T) {
	tbody := tbodyFromRows(t,
		`<tr><td class="wsod_firstCol">AAPL</td><td>12.34</td></tr>`,
	)

	records, err := ExtractMovers(tbody, testCapturedAt, LoserStop)
	assert.Nil(t, records)
	assert.True(t, apperr.IsMissingField(err))
}

func TestExtractMoversMalformedPercentage(t *testing.T) {
	tbody := tbodyFromRows(t,
		gainerRow("AAPL", "garbage"),
	)

	records, err := ExtractMovers(tbody, testCapturedAt, LoserStop)
	assert.Nil(t, records)
	assert.True(t, apperr.IsType(err, apperr.ErrorTypeParse))
	assert.ErrorIs(t, err, ErrPercentEmpty)
}

func TestExtractMoversEmptyTable(t *testing.T) {
	tbody := tbodyFromRows(t, headerRow)

	records, err := ExtractMovers(tbody, testCapturedAt, LoserStop)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractMoversNilBody(t *testing.T) {
	records, err := ExtractMovers(nil, testCapturedAt, LoserStop)
	assert.Nil(t, records)
	assert.True(t, apperr.IsMissingField(err))
}

func TestParseLoserPolicy(t *testing.T) {
	policy, err := ParseLoserPolicy("stop")
	require.NoError(t, err)
	assert.Equal(t, LoserStop, policy)

	policy, err = ParseLoserPolicy("skip")
	require.NoError(t, err)
	assert.Equal(t, LoserSkip, policy)

	_, err = ParseLoserPolicy("bogus")
	assert.True(t, apperr.IsType(err, apperr.ErrorTypeConfiguration))
}
