package interfaces

import (
	"context"
	"time"
)

// Browser is the narrow page-driving capability the engine consumes. All
// selector operations address the first matching element and honor a bounded
// timeout; implementations must return rather than block indefinitely.
type Browser interface {
	// Navigate loads a URL and waits only for the initial document parse,
	// not for the page to go quiet.
	Navigate(ctx context.Context, url string) error

	// CurrentURL returns the URL of the live page.
	CurrentURL(ctx context.Context) (string, error)

	// Title returns the title of the live page.
	Title(ctx context.Context) (string, error)

	// IsVisible reports whether an element matching selector becomes visible
	// within timeout. Running out of time is not an error.
	IsVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error)

	// Click clicks the element matching selector.
	Click(ctx context.Context, selector string, timeout time.Duration) error

	// Clear empties the input matching selector.
	Clear(ctx context.Context, selector string, timeout time.Duration) error

	// TypeText types text into the element matching selector character by
	// character, pausing perCharDelay between keystrokes, so that pages
	// reacting only to real keyboard events still see the input.
	TypeText(ctx context.Context, selector, text string, perCharDelay time.Duration) error

	// Press sends a single key to the element matching selector.
	Press(ctx context.Context, selector, key string) error

	// WaitVisible blocks until an element matching selector is visible or
	// timeout elapses.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// WaitForLoad waits for the page to reach its parsed state after a
	// navigation triggered by page interaction.
	WaitForLoad(ctx context.Context) error

	// Pause sleeps for a fixed duration to let dynamic content settle.
	Pause(ctx context.Context, d time.Duration)

	// Close releases the page, context and browser.
	Close() error
}
