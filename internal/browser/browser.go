// Package browser drives headless Chrome to probe engine quirks and to take
// post-script DOM snapshots of pages.
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"

	"parsifal/formval"
	"parsifal/internal/source"
)

// Browser owns a Chrome allocator. Each operation runs in its own tab.
type Browser struct {
	allocator context.Context
	cancel    context.CancelFunc
	logger    *log.Logger
	timeout   time.Duration
}

// New prepares a headless Chrome allocator. Chrome itself starts lazily on
// the first operation.
func New(logger *log.Logger, timeout time.Duration, extra ...chromedp.ExecAllocatorOption) *Browser {
	if logger == nil {
		logger = log.Default()
	}
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
	)
	opts = append(opts, extra...)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Browser{
		allocator: allocCtx,
		cancel:    cancel,
		logger:    logger,
		timeout:   timeout,
	}
}

// Close shuts Chrome down.
func (b *Browser) Close() {
	if b.cancel != nil {
		b.cancel()
	}
}

// tab opens a browser context bound to ctx and the configured timeout.
func (b *Browser) tab(ctx context.Context) (context.Context, context.CancelFunc) {
	taskCtx, cancelTab := chromedp.NewContext(b.allocator)
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, b.timeout)
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			cancelTimeout()
		case <-stop:
		}
	}()
	return taskCtx, func() {
		close(stop)
		cancelTimeout()
		cancelTab()
	}
}

// Probe evaluates the quirk probe in a blank HTML page and returns the
// engine's flags.
func (b *Browser) Probe(ctx context.Context) (formval.Flags, error) {
	taskCtx, cancel := b.tab(ctx)
	defer cancel()

	var raw []byte
	start := time.Now()
	err := chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.Evaluate(probeScript, &raw),
	)
	if err != nil {
		return formval.Flags{}, fmt.Errorf("probe: %w", err)
	}
	flags, err := DecodeFlags(raw)
	if err != nil {
		return formval.Flags{}, fmt.Errorf("probe: %w", err)
	}
	b.logger.Debug("probed", "flags", fmt.Sprintf("%+v", flags), "took", time.Since(start))
	return flags, nil
}

// Render loads target, lets its scripts run, copies live control state
// into attributes and returns the resulting DOM.
func (b *Browser) Render(ctx context.Context, target string, waitSelector string) (*source.Document, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, source.ErrEmptyTarget
	}
	taskCtx, cancel := b.tab(ctx)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if sel := strings.TrimSpace(waitSelector); sel != "" {
		actions = append(actions, chromedp.WaitVisible(sel, chromedp.ByQuery))
	}

	var finalURL string
	var synced bool
	var root *cdp.Node
	actions = append(actions,
		chromedp.Evaluate(syncStateScript, &synced),
		chromedp.Location(&finalURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			root, err = dom.GetDocument().WithDepth(-1).WithPierce(true).Do(ctx)
			return err
		}),
	)
	start := time.Now()
	if err := chromedp.Run(taskCtx, actions...); err != nil {
		return nil, fmt.Errorf("render %s: %w", target, err)
	}
	if finalURL == "" {
		finalURL = target
	}
	doc, xml := FromCDP(root)
	if doc == nil {
		return nil, fmt.Errorf("render %s: empty document", target)
	}
	b.logger.Debug("rendered", "url", finalURL, "synced", synced, "took", time.Since(start))
	return &source.Document{URL: finalURL, Root: doc, XML: xml}, nil
}
