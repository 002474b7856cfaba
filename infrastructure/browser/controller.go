package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"web_task_agent/domain/entities"
	"web_task_agent/domain/interfaces"
)

const navigateTimeout = 30 * time.Second

type controller struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	logger  *logrus.Logger
}

// NewController launches a browser on the requested channel and opens a
// single context and page for the run. Launch failure is the one fatal error
// in the system and comes back as *entities.LaunchError with a
// channel-fallback hint; no resources are left behind in that case.
func NewController(channel string, headless bool, slowMo time.Duration, logger *logrus.Logger) (interfaces.Browser, error) {
	if strings.TrimSpace(channel) == "" {
		channel = "chromium"
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, &entities.LaunchError{Channel: channel, Err: err}
	}

	browser, err := launch(pw, channel, headless, slowMo)
	if err != nil {
		pw.Stop()
		return nil, &entities.LaunchError{Channel: channel, Err: err}
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	logger.WithField("channel", channel).Info("Browser launched")

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &controller{
		pw:      pw,
		browser: browser,
		context: browserCtx,
		page:    page,
		logger:  logger,
	}, nil
}

// launch maps the engine choice onto playwright browser types and channels:
// chromium is the bundled default, chrome/msedge reuse system browsers via
// chromium channels, and any unrecognized name is passed through as a channel
// so new ones work without a code change.
func launch(pw *playwright.Playwright, channel string, headless bool, slowMo time.Duration) (playwright.Browser, error) {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	}
	if slowMo > 0 {
		opts.SlowMo = playwright.Float(float64(slowMo.Milliseconds()))
	}

	switch name := strings.ToLower(strings.TrimSpace(channel)); name {
	case "", "chromium":
		return pw.Chromium.Launch(opts)
	case "chrome", "google-chrome":
		opts.Channel = playwright.String("chrome")
		return pw.Chromium.Launch(opts)
	case "msedge", "edge":
		opts.Channel = playwright.String("msedge")
		return pw.Chromium.Launch(opts)
	case "firefox":
		return pw.Firefox.Launch(opts)
	case "webkit":
		return pw.WebKit.Launch(opts)
	default:
		opts.Channel = playwright.String(name)
		return pw.Chromium.Launch(opts)
	}
}

// Navigate waits only for the initial document parse. Many destinations never
// reach a quiescent loaded state thanks to ads and trackers.
func (c *controller) Navigate(ctx context.Context, url string) error {
	_, err := c.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(navigateTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (c *controller) CurrentURL(ctx context.Context) (string, error) {
	return c.page.URL(), nil
}

func (c *controller) Title(ctx context.Context) (string, error) {
	title, err := c.page.Title()
	if err != nil {
		return "", fmt.Errorf("failed to read page title: %w", err)
	}
	return title, nil
}

func (c *controller) IsVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	err := c.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *controller) Click(ctx context.Context, selector string, timeout time.Duration) error {
	err := c.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

func (c *controller) Clear(ctx context.Context, selector string, timeout time.Duration) error {
	err := c.page.Locator(selector).First().Clear(playwright.LocatorClearOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", selector, err)
	}
	return nil
}

// TypeText presses the query key by key. Fill would be faster, but some
// search boxes only react to real keyboard events.
func (c *controller) TypeText(ctx context.Context, selector, text string, perCharDelay time.Duration) error {
	err := c.page.Locator(selector).First().PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(float64(perCharDelay.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to type into %s: %w", selector, err)
	}
	return nil
}

func (c *controller) Press(ctx context.Context, selector, key string) error {
	if err := c.page.Locator(selector).First().Press(key); err != nil {
		return fmt.Errorf("failed to press %s on %s: %w", key, selector, err)
	}
	return nil
}

func (c *controller) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	err := c.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("element %s not visible: %w", selector, err)
	}
	return nil
}

func (c *controller) WaitForLoad(ctx context.Context) error {
	return c.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	})
}

func (c *controller) Pause(ctx context.Context, d time.Duration) {
	c.page.WaitForTimeout(float64(d.Milliseconds()))
}

// Close releases context, browser and the playwright driver on every exit
// path. Already-closed targets are tolerated so a page the user closed by
// hand does not turn teardown into an error.
func (c *controller) Close() error {
	var closeErr error

	if c.context != nil {
		if err := c.context.Close(); err != nil && !isClosedError(err) {
			closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		c.context = nil
	}

	if c.browser != nil {
		if err := c.browser.Close(); err != nil && !isClosedError(err) {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to close browser: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to close browser: %w", err)
			}
		}
		c.browser = nil
	}

	if c.pw != nil {
		if err := c.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		c.pw = nil
	}

	return closeErr
}

func isClosedError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "closed") || strings.Contains(msg, "target closed")
}
