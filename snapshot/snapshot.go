// Package snapshot saves PNG screenshots of a running dashboard, one per site selection.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"spacex-dashboard/config"
	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

const (
	captureTimeout = 60 * time.Second
	viewportWidth  = 1280
	viewportHeight = 1400
	dropdownID     = "site-dropdown"
)

// Capturer drives headless Chrome against the dashboard.
type Capturer struct {
	cfg    *config.Config
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
}

// New creates a Capturer writing into cfg.SnapshotDir.
func New(cfg *config.Config, logger *utils.Logger) *Capturer {
	return &Capturer{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.SnapshotConcurrency, cfg.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// DefaultSites returns every dropdown value, ALL first.
func DefaultSites() []string {
	sites := make([]string, 0, len(models.SiteOptions))
	for _, opt := range models.SiteOptions {
		sites = append(sites, opt.Value)
	}
	return sites
}

// Capture screenshots the dashboard at baseURL once per distinct site and
// returns the written file paths, sorted. Failed sites are reported together
// in the returned error; successful captures are still returned.
func (c *Capturer) Capture(ctx context.Context, baseURL string, sites []string) ([]string, error) {
	pageURL, err := dashboardURL(baseURL)
	if err != nil {
		return nil, err
	}
	sites = uniqueSites(sites)
	if len(sites) == 0 {
		sites = DefaultSites()
	}

	if err := os.MkdirAll(c.cfg.SnapshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create dir: %w", err)
	}

	chromeBin := findChromeBinary(c.cfg.ChromeBin)
	c.logger.Info("[snapshot] Capturing %d site(s) from %s using %q", len(sites), pageURL, chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.WindowSize(viewportWidth, viewportHeight),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// One browser for every capture; each site gets its own tab.
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("snapshot: start browser: %w", err)
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	captured := utils.NewStringSet()

	for _, site := range sites {
		site := site
		c.pool.Submit(func() {
			path := snapshotPath(c.cfg.SnapshotDir, site)
			err := c.retry.Do(ctx, "snapshot "+site, func() error {
				return c.captureSite(browserCtx, pageURL, site, path)
			})
			if err != nil {
				c.logger.Warn("[snapshot] %s: %v", site, err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}

			captured.Add(site)
			c.logger.Info("[snapshot] Saved %s", path)
		})
	}
	c.pool.Wait()

	if missing := missingSites(sites, captured); len(missing) > 0 {
		c.logger.Warn("[snapshot] Captured %d/%d site(s), failed: %s",
			captured.Size(), len(sites), strings.Join(missing, ", "))
	} else {
		c.logger.Info("[snapshot] Captured %d/%d site(s)", captured.Size(), len(sites))
	}

	return savedPaths(c.cfg.SnapshotDir, sites, captured), errors.Join(errs...)
}

func snapshotPath(dir, site string) string {
	return filepath.Join(dir, slug(site)+".png")
}

// missingSites lists the sites not in captured, in request order.
func missingSites(sites []string, captured *utils.StringSet) []string {
	var missing []string
	for _, s := range sites {
		if !captured.Contains(s) {
			missing = append(missing, s)
		}
	}
	return missing
}

// savedPaths returns the sorted file paths of the captured sites.
func savedPaths(dir string, sites []string, captured *utils.StringSet) []string {
	paths := make([]string, 0, captured.Size())
	for _, s := range sites {
		if captured.Contains(s) {
			paths = append(paths, snapshotPath(dir, s))
		}
	}
	sort.Strings(paths)
	return paths
}

func (c *Capturer) captureSite(browserCtx context.Context, pageURL, site, path string) error {
	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, captureTimeout)
	defer cancelTimeout()

	var (
		ready bool
		png   []byte
	)
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(dropdownID, chromedp.ByID),
		chromedp.Evaluate(selectSiteScript(site), nil),
		chromedp.Poll(chartsLoadedExpr(site), &ready, chromedp.WithPollingInterval(100*time.Millisecond)),
		chromedp.FullScreenshot(&png, 90),
	)
	if err != nil {
		return fmt.Errorf("chromedp capture: %w", err)
	}

	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// dashboardURL validates baseURL and returns the page URL.
func dashboardURL(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("snapshot: invalid url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("snapshot: invalid url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("snapshot: invalid url %q: missing host", baseURL)
	}
	u.Path = "/"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// selectSiteScript picks site in the dropdown and fires its change handler.
func selectSiteScript(site string) string {
	return fmt.Sprintf(`(function() {
	var d = document.getElementById(%q);
	d.value = %s;
	d.dispatchEvent(new Event("change"));
	return d.value;
})()`, dropdownID, strconv.Quote(site))
}

// chartsLoadedExpr is truthy once both chart images show site and have decoded.
func chartsLoadedExpr(site string) string {
	return fmt.Sprintf(`(function() {
	var want = "site=" + encodeURIComponent(%s);
	return ["success-pie-chart", "success-payload-scatter-chart"].every(function(id) {
		var img = document.getElementById(id);
		return img && img.src.indexOf(want) !== -1 && img.complete && img.naturalWidth > 0;
	});
})()`, strconv.Quote(site))
}

// uniqueSites trims sites and drops blanks and repeats, keeping first-seen order.
func uniqueSites(sites []string) []string {
	seen := utils.NewStringSet()
	out := make([]string, 0, len(sites))
	for _, s := range sites {
		s = strings.TrimSpace(s)
		if s == "" || !seen.Add(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// slug turns a site name into a file name: "CCAFS LC-40" becomes "ccafs-lc-40".
func slug(site string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(site) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "site"
	}
	return out
}

// findChromeBinary locates Chrome/Chromium, preferring the configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
