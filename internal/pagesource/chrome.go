package pagesource

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/Melvillian/after-market/internal/dom"
	"github.com/Melvillian/after-market/logger"
	apperr "github.com/Melvillian/after-market/pkg/errors"
)

// ChromeSource renders the target page in a headless browser so the
// script-built movers table is present before extraction. Navigation waits
// for the movers container to become visible, matching how the page
// signals it has finished loading quote data.
type ChromeSource struct {
	url     string
	timeout time.Duration
	log     *logger.Logger

	allocCancel context.CancelFunc
	browserCtx  context.Context
	ctxCancel   context.CancelFunc
	navigated   bool
}

// NewChromeSource launches a headless browser for one page load
func NewChromeSource(ctx context.Context, url string, timeout time.Duration) *ChromeSource {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)

	return &ChromeSource{
		url:         url,
		timeout:     timeout,
		log:         logger.ForSource("chrome"),
		allocCancel: allocCancel,
		browserCtx:  browserCtx,
		ctxCancel:   ctxCancel,
	}
}

// Subtree navigates on first use, then extracts the outer HTML of the
// first node matching selector and converts it to a DOM tree.
func (s *ChromeSource) Subtree(ctx context.Context, selector string) (*dom.Node, error) {
	if err := s.navigate(ctx); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(s.browserCtx, s.timeout)
	defer cancel()

	var outerHTML string
	err := chromedp.Run(runCtx,
		chromedp.OuterHTML(selector, &outerHTML, chromedp.ByQuery),
	)
	if err != nil {
		return nil, apperr.NewRender(fmt.Sprintf("selector %q not found in %s", selector, s.url), err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(outerHTML))
	if err != nil {
		return nil, apperr.NewRender(fmt.Sprintf("selector %q: HTML parse failed", selector), err)
	}

	// goquery wraps the fragment in html/body; unwrap back to the
	// selected element itself
	sel := doc.Find("body").Children()
	if sel.Length() == 0 {
		return nil, apperr.NewRender(fmt.Sprintf("selector %q matched an empty subtree", selector), nil)
	}

	node := dom.FromHTML(sel.Nodes[0])
	if node == nil {
		return nil, apperr.NewRender(fmt.Sprintf("selector %q matched an empty subtree", selector), nil)
	}
	return node, nil
}

// navigate loads the page once and waits for the movers container, the
// last piece of quote data the page renders
func (s *ChromeSource) navigate(ctx context.Context) error {
	if s.navigated {
		return nil
	}

	runCtx, cancel := context.WithTimeout(s.browserCtx, s.timeout)
	defer cancel()

	s.log.Info().Str("url", s.url).Msg("Navigating")

	err := chromedp.Run(runCtx,
		chromedp.Navigate(s.url),
		chromedp.WaitVisible(MoversSelector, chromedp.ByQuery),
	)
	if err != nil {
		return apperr.NewRender(fmt.Sprintf("navigation to %s failed", s.url), err)
	}

	select {
	case <-ctx.Done():
		return apperr.NewRender("navigation canceled", ctx.Err())
	default:
	}

	s.navigated = true
	return nil
}

// Close shuts down the browser
func (s *ChromeSource) Close() error {
	s.ctxCancel()
	s.allocCancel()
	return nil
}
