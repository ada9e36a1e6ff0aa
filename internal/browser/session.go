package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

var (
	// ErrSessionStart means the browser process could not be launched.
	ErrSessionStart = errors.New("browser session start failed")
	// ErrNavigationTimeout means the readiness condition was not met in time.
	ErrNavigationTimeout = errors.New("navigation timeout")
)

// Options configures the headless browser session.
type Options struct {
	Headless   bool
	BinaryPath string        // empty: let chromedp find Chrome
	UserAgent  string        // empty: Chrome default
	NavTimeout time.Duration // readiness deadline per navigation
	Retries    int           // extra attempts after the first failure
}

// Session owns a running browser process. Close must be called on every exit
// path; it terminates the process.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	opts        Options
}

// Open launches the browser and verifies it is responsive. Launch failures
// are retried within the configured budget, then surfaced as ErrSessionStart.
func Open(opts Options) (*Session, error) {
	if opts.NavTimeout == 0 {
		opts.NavTimeout = 60 * time.Second
	}

	var s *Session
	err := withRetry(opts.Retries, "open browser", func() error {
		var err error
		s, err = open(opts)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionStart, err)
	}
	return s, nil
}

func open(opts Options) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-popup-blocking", true),
		chromedp.Flag("ignore-certificate-errors", true),
		chromedp.NoSandbox,
	)
	if opts.BinaryPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.BinaryPath))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Probe the process so a missing binary fails here, not on first navigate.
	probeCtx, probeCancel := context.WithTimeout(ctx, 30*time.Second)
	defer probeCancel()
	if err := chromedp.Run(probeCtx); err != nil {
		cancel()
		allocCancel()
		return nil, err
	}

	return &Session{ctx: ctx, cancel: cancel, allocCancel: allocCancel, opts: opts}, nil
}

// Navigate loads the URL and blocks until readySelector is visible or the
// deadline elapses. Timeouts are retried within the budget, then surfaced as
// ErrNavigationTimeout.
func (s *Session) Navigate(url, readySelector string) (*Page, error) {
	err := withRetry(s.opts.Retries, "navigate", func() error {
		navCtx, cancel := context.WithTimeout(s.ctx, s.opts.NavTimeout)
		defer cancel()
		return chromedp.Run(navCtx,
			chromedp.Navigate(url),
			chromedp.WaitVisible(readySelector, chromedp.ByQuery),
		)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s not visible within %s", ErrNavigationTimeout, readySelector, s.opts.NavTimeout)
		}
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	return &Page{ctx: s.ctx}, nil
}

// Close terminates the browser process. Safe to call more than once.
func (s *Session) Close() {
	if s.cancel != nil {
		chromedp.Cancel(s.ctx)
		s.cancel()
		s.cancel = nil
	}
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCancel = nil
	}
}

// withRetry runs fn up to 1+retries times with linear backoff.
func withRetry(retries int, op string, fn func() error) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 5 * time.Second
			log.Printf("[WARN] %s failed (attempt %d/%d), retrying in %s: %v", op, attempt, retries+1, backoff, err)
			time.Sleep(backoff)
		}
		if err = fn(); err == nil {
			return nil
		}
	}
	return err
}
