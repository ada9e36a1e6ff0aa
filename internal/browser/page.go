package browser

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Page is a handle on the rendered document of an open session.
type Page struct {
	ctx context.Context
}

// Text returns the visible text of the first element matching sel, waiting up
// to timeout for it to appear. context.DeadlineExceeded means the selector
// matched nothing.
func (p *Page) Text(sel string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	var out string
	if err := chromedp.Run(ctx, chromedp.Text(sel, &out, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return "", err
	}
	return out, nil
}

// Eval runs the JavaScript expression and unmarshals its JSON result into out.
func (p *Page) Eval(js string, out any) error {
	ctx, cancel := context.WithTimeout(p.ctx, 10*time.Second)
	defer cancel()
	return chromedp.Run(ctx, chromedp.Evaluate(js, out))
}

// DismissBanner clicks the cookie-consent button if it shows up within the
// grace period. Best effort: the banner is not always present.
func (p *Page) DismissBanner(sel string) {
	if sel == "" {
		return
	}
	ctx, cancel := context.WithTimeout(p.ctx, 10*time.Second)
	defer cancel()
	err := chromedp.Run(ctx, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible))
	switch {
	case err == nil:
		log.Println("[INFO] dismissed cookie banner")
	case errors.Is(err, context.DeadlineExceeded):
		// no banner this time
	default:
		log.Printf("[WARN] cookie banner click failed: %v", err)
	}
}
