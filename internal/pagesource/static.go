package pagesource

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Melvillian/after-market/helpers"
	"github.com/Melvillian/after-market/internal/dom"
	"github.com/Melvillian/after-market/logger"
	apperr "github.com/Melvillian/after-market/pkg/errors"
	"github.com/Melvillian/after-market/services/cache"
)

// StaticSource fetches the target page over plain HTTP and resolves
// subtrees with goquery. It serves server-rendered pages and tests; a
// JavaScript-rendered page needs the chrome source instead.
//
// When a cache service is configured, a recent-fetch key guards against
// refetching inside the block window. This is a politeness guard against
// hammering the quote page, not a retry policy.
type StaticSource struct {
	url       string
	cacheSvc  cache.CacheService
	cacheKey  string
	blockTime time.Duration
	log       *logger.Logger

	doc *goquery.Document
}

// NewStaticSource creates a static page source. cacheSvc may be nil to
// disable the fetch guard.
func NewStaticSource(url string, cacheSvc cache.CacheService, blockTime time.Duration) *StaticSource {
	return &StaticSource{
		url:       url,
		cacheSvc:  cacheSvc,
		cacheKey:  "after_market_fetch",
		blockTime: blockTime,
		log:       logger.ForSource("static"),
	}
}

// Subtree fetches the page on first use and returns the converted DOM
// subtree under the first node matching selector.
func (s *StaticSource) Subtree(ctx context.Context, selector string) (*dom.Node, error) {
	if s.doc == nil {
		doc, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.doc = doc
	}

	sel := s.doc.Find(selector)
	if sel.Length() == 0 {
		return nil, apperr.NewRender(fmt.Sprintf("selector %q not found in %s", selector, s.url), nil)
	}

	node := dom.FromHTML(sel.Nodes[0])
	if node == nil {
		return nil, apperr.NewRender(fmt.Sprintf("selector %q matched an empty subtree", selector), nil)
	}
	return node, nil
}

// load fetches and parses the page, honoring the fetch guard
func (s *StaticSource) load(ctx context.Context) (*goquery.Document, error) {
	if s.cacheSvc != nil {
		_, err := s.cacheSvc.Get(s.cacheKey)
		if err == nil {
			return nil, apperr.NewFetch(fmt.Sprintf("%s: fetched within the last %v, blocked", s.url, s.blockTime), nil)
		}
	}

	body, err := helpers.FetchWithBrowserHeaders(ctx, s.url)
	if err != nil {
		if s.cacheSvc != nil && helpers.IsRateLimited(err) {
			if setErr := s.cacheSvc.Set(s.cacheKey, []byte("1"), s.blockTime); setErr != nil {
				s.log.Warn().Err(setErr).Msg("Failed to set fetch guard key")
			}
		}
		return nil, err
	}

	if s.cacheSvc != nil {
		if setErr := s.cacheSvc.Set(s.cacheKey, []byte("1"), s.blockTime); setErr != nil {
			s.log.Warn().Err(setErr).Msg("Failed to set fetch guard key")
		}
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, apperr.NewFetch(fmt.Sprintf("%s: HTML parse failed", s.url), err)
	}

	s.log.Debug().Str("url", s.url).Msg("Fetched page")
	return doc, nil
}

// Close implements Source; the static source holds no live resources
func (s *StaticSource) Close() error {
	return nil
}
