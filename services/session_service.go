package services

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/fenilmodi00/award-scraper/shared"
)

// CookieSource produces the session cookie jar the booking API calls carry.
// The pipeline depends on this interface only, never on the browser.
type CookieSource interface {
	AcquireSessionCookies(ctx context.Context) (map[string]string, error)
}

// BrowserSessionService acquires session cookies by loading the airline
// homepage in a real Chrome instance. The booking API rejects requests
// without the cookies the site sets during that first page load.
type BrowserSessionService struct {
	homepageURL string
	headless    bool
	timeout     time.Duration
	logger      *logrus.Entry
}

// NewBrowserSessionService creates a new browser-backed cookie source
func NewBrowserSessionService(homepageURL string, headless bool, timeout time.Duration) *BrowserSessionService {
	return &BrowserSessionService{
		homepageURL: homepageURL,
		headless:    headless,
		timeout:     timeout,
		logger:      logrus.WithField("component", "BrowserSessionService"),
	}
}

// AcquireSessionCookies visits the homepage and returns the resulting
// cookie jar as a name→value map.
func (s *BrowserSessionService) AcquireSessionCookies(ctx context.Context) (map[string]string, error) {
	startTime := time.Now()
	s.logger.WithField("homepage_url", s.homepageURL).Info("Acquiring session cookies via headless browser")

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(shared.BookingUserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, s.timeout)
	defer cancelTimeout()

	var browserCookies []*network.Cookie
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(s.homepageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var cookieErr error
			browserCookies, cookieErr = storage.GetCookies().Do(ctx)
			return cookieErr
		}),
	)
	if err != nil {
		return nil, shared.WrapError(err, shared.ErrorCategoryAuthentication, shared.CodeMissingCookies,
			"BrowserSessionService", "AcquireSessionCookies", true)
	}

	cookieJar := make(map[string]string, len(browserCookies))
	for _, cookie := range browserCookies {
		cookieJar[cookie.Name] = cookie.Value
	}

	if len(cookieJar) == 0 {
		return nil, shared.NewServiceError(shared.ErrorCategoryAuthentication, shared.CodeMissingCookies,
			"homepage visit produced no cookies", "BrowserSessionService", "AcquireSessionCookies", true, nil)
	}

	s.logger.WithFields(logrus.Fields{
		"cookie_count":     len(cookieJar),
		"acquisition_time": time.Since(startTime),
	}).Info("Session cookies acquired")

	return cookieJar, nil
}
