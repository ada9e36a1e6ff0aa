package extractor

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Page is the rendered-document surface the extractor needs. Implemented by
// *browser.Page; tests substitute a fake.
type Page interface {
	Text(sel string, timeout time.Duration) (string, error)
	Eval(js string, out any) error
}

// MetricLocator finds the raw text of one metric on the page. One strategy
// per metric; when the dashboard changes its layout, only the strategy for
// the affected metric is swapped.
type MetricLocator interface {
	Locate(p Page) (string, error)
}

const locateTimeout = 5 * time.Second

// CSSLocator reads the visible text of a CSS selector match.
type CSSLocator struct {
	Selector string
}

func (l CSSLocator) Locate(p Page) (string, error) {
	text, err := p.Text(l.Selector, locateTimeout)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: selector %q", ErrSelectorNotFound, l.Selector)
		}
		return "", fmt.Errorf("query %q: %w", l.Selector, err)
	}
	return text, nil
}

// LabelLocator finds a stat card by its label text and reads the adjacent
// value. Survives class-name churn that breaks CSS selectors.
type LabelLocator struct {
	Label string
}

const labelLookupJS = `(() => {
	const label = %q;
	const els = Array.from(document.querySelectorAll('div,span,dt,th,p,label'));
	const lab = els.find(e => e.childElementCount === 0 && e.textContent.trim() === label);
	if (!lab) return { found: false, text: '' };
	let val = lab.nextElementSibling;
	if (!val && lab.parentElement) {
		val = Array.from(lab.parentElement.children).find(c => c !== lab);
	}
	if (!val || !val.textContent.trim()) return { found: false, text: '' };
	return { found: true, text: val.textContent.trim() };
})()`

func (l LabelLocator) Locate(p Page) (string, error) {
	var res struct {
		Found bool   `json:"found"`
		Text  string `json:"text"`
	}
	if err := p.Eval(fmt.Sprintf(labelLookupJS, l.Label), &res); err != nil {
		return "", fmt.Errorf("label lookup %q: %w", l.Label, err)
	}
	if !res.Found {
		return "", fmt.Errorf("%w: label %q", ErrSelectorNotFound, l.Label)
	}
	return res.Text, nil
}
