package agent

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web_task_agent/domain/entities"
)

// fakeBrowser scripts page behavior per selector so engine tests can exercise
// the fallthrough paths without a real browser.
type fakeBrowser struct {
	visible    map[string]bool  // selectors that are (or become) visible
	visibleErr map[string]error // IsVisible errors per selector
	clickErr   map[string]error
	clearErr   map[string]error
	typeErr    map[string]error
	url        string
	title      string
	waited     []string // WaitVisible calls, in order
	clicked    []string
	typed      map[string]string // selector -> text
	pressed    []string
	loadWaits  int
	closed     bool
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		visible:    map[string]bool{},
		visibleErr: map[string]error{},
		clickErr:   map[string]error{},
		clearErr:   map[string]error{},
		typeErr:    map[string]error{},
		typed:      map[string]string{},
	}
}

func (f *fakeBrowser) Navigate(ctx context.Context, url string) error { return nil }

func (f *fakeBrowser) CurrentURL(ctx context.Context) (string, error) { return f.url, nil }

func (f *fakeBrowser) Title(ctx context.Context) (string, error) { return f.title, nil }

func (f *fakeBrowser) IsVisible(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	if err := f.visibleErr[selector]; err != nil {
		return false, err
	}
	return f.visible[selector], nil
}

func (f *fakeBrowser) Click(ctx context.Context, selector string, timeout time.Duration) error {
	f.clicked = append(f.clicked, selector)
	return f.clickErr[selector]
}

func (f *fakeBrowser) Clear(ctx context.Context, selector string, timeout time.Duration) error {
	return f.clearErr[selector]
}

func (f *fakeBrowser) TypeText(ctx context.Context, selector, text string, perCharDelay time.Duration) error {
	if err := f.typeErr[selector]; err != nil {
		return err
	}
	f.typed[selector] = text
	return nil
}

func (f *fakeBrowser) Press(ctx context.Context, selector, key string) error {
	f.pressed = append(f.pressed, key)
	return nil
}

func (f *fakeBrowser) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	f.waited = append(f.waited, selector)
	if !f.visible[selector] {
		return errors.New("timed out waiting for " + selector)
	}
	return nil
}

func (f *fakeBrowser) WaitForLoad(ctx context.Context) error {
	f.loadWaits++
	return nil
}

func (f *fakeBrowser) Pause(ctx context.Context, d time.Duration) {}

func (f *fakeBrowser) Close() error {
	f.closed = true
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func searchRouted() entities.RoutedSite {
	return entities.RoutedSite{
		Name:  entities.DestSearch,
		URL:   entities.SiteProfiles[entities.DestSearch].BaseURL,
		Query: "golang generics tutorial",
	}
}

func TestRunSubmitsViaLaterCandidate(t *testing.T) {
	fake := newFakeBrowser()
	// Only the third search-box candidate exists on this rendering of the page.
	fake.visible["input[type='search']"] = true
	fake.visible["#search"] = true
	fake.url = "https://www.google.com/search?q=golang+generics+tutorial"
	fake.title = "golang generics tutorial - Google Search"

	engine := NewEngine(fake, quietLogger(), DefaultTimeouts())
	report := engine.Run(context.Background(), searchRouted())

	assert.True(t, report.Searched)
	assert.Equal(t, entities.OutcomeApplied, report.SearchOutcome)
	assert.Equal(t, "golang generics tutorial", fake.typed["input[type='search']"])
	assert.Equal(t, []string{"Enter"}, fake.pressed)
	assert.Equal(t, fake.url, report.FinalURL)
	assert.Equal(t, fake.title, report.FinalTitle)

	// Earlier candidates tried once each, in order, never retried.
	require.GreaterOrEqual(t, len(fake.waited), 3)
	assert.Equal(t, []string{"textarea[name='q']", "input[name='q']", "input[type='search']"}, fake.waited[:3])
	assert.Equal(t, 1, count(fake.waited, "textarea[name='q']"))
	assert.Equal(t, 1, count(fake.waited, "input[name='q']"))
}

func TestRunReportsPageStateWhenNoCandidateWorks(t *testing.T) {
	fake := newFakeBrowser()
	// The destination redirected; the report must carry the live page state.
	fake.url = "https://consent.google.com/m?continue=https://www.google.com/"
	fake.title = "Before you continue"

	engine := NewEngine(fake, quietLogger(), DefaultTimeouts())
	report := engine.Run(context.Background(), searchRouted())

	assert.False(t, report.Searched)
	assert.Equal(t, entities.OutcomeNotFound, report.SearchOutcome)
	assert.Equal(t, fake.url, report.FinalURL)
	assert.Equal(t, fake.title, report.FinalTitle)
	assert.Empty(t, fake.typed)

	// The results stage must be skipped when nothing was submitted.
	assert.Equal(t, 0, fake.loadWaits)
}

func TestRunAbsorbsCandidateFailureMidSequence(t *testing.T) {
	fake := newFakeBrowser()
	fake.visible["textarea[name='q']"] = true
	fake.visible["input[name='q']"] = true
	fake.typeErr["textarea[name='q']"] = errors.New("element detached")
	fake.url = "https://www.google.com/search"

	engine := NewEngine(fake, quietLogger(), DefaultTimeouts())
	report := engine.Run(context.Background(), searchRouted())

	// First candidate failed mid-interaction; second carried the query.
	assert.True(t, report.Searched)
	assert.Equal(t, "golang generics tutorial", fake.typed["input[name='q']"])
}

func TestRunMarksIgnoredWhenEveryCandidateErrors(t *testing.T) {
	fake := newFakeBrowser()
	for _, sel := range entities.SiteProfiles[entities.DestSearch].SearchSelectors {
		fake.visible[sel] = true
		fake.clickErr[sel] = errors.New("intercepted by overlay")
	}

	engine := NewEngine(fake, quietLogger(), DefaultTimeouts())
	report := engine.Run(context.Background(), searchRouted())

	assert.False(t, report.Searched)
	assert.Equal(t, entities.OutcomeIgnored, report.SearchOutcome)
}

func TestRunWaitsForResultsAfterSearch(t *testing.T) {
	fake := newFakeBrowser()
	fake.visible["textarea[name='q']"] = true
	fake.visible["#search"] = true

	engine := NewEngine(fake, quietLogger(), DefaultTimeouts())
	report := engine.Run(context.Background(), searchRouted())

	assert.True(t, report.Searched)
	assert.Equal(t, 1, fake.loadWaits)
	assert.Contains(t, fake.waited, "#search")
}

func TestDismissPopupsOutcomes(t *testing.T) {
	fake := newFakeBrowser()
	fake.visible["button:has-text('Accept all')"] = true
	fake.visibleErr["button:has-text('Got it')"] = errors.New("frame detached")

	engine := NewEngine(fake, quietLogger(), DefaultTimeouts())
	outcomes := engine.dismissPopups(context.Background())

	require.Len(t, outcomes, len(entities.PopupSelectors))
	assert.Equal(t, entities.OutcomeApplied, outcomes[0])
	assert.Equal(t, entities.OutcomeIgnored, outcomes[4])
	assert.Equal(t, entities.OutcomeNotFound, outcomes[1])
	assert.Contains(t, fake.clicked, "button:has-text('Accept all')")
}

func TestDismissPopupsAbsorbsClickFailure(t *testing.T) {
	fake := newFakeBrowser()
	fake.visible["button:has-text('I agree')"] = true
	fake.clickErr["button:has-text('I agree')"] = errors.New("not clickable")

	engine := NewEngine(fake, quietLogger(), DefaultTimeouts())
	outcomes := engine.dismissPopups(context.Background())

	require.Len(t, outcomes, len(entities.PopupSelectors))
	assert.Equal(t, entities.OutcomeIgnored, outcomes[1])
}

func count(items []string, want string) int {
	n := 0
	for _, it := range items {
		if it == want {
			n++
		}
	}
	return n
}
