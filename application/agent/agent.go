package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"web_task_agent/domain/entities"
	"web_task_agent/domain/interfaces"
)

// Timeouts bounds every wait the engine performs. No engine operation blocks
// past its bound.
type Timeouts struct {
	Popup       time.Duration // visibility check for optional dialogs
	PopupSettle time.Duration // pause after dismissing a dialog
	Search      time.Duration // wait for a search-box candidate
	Action      time.Duration // click/clear on a located element
	Results     time.Duration // per results-indicator candidate
	Settle      time.Duration // final pause for dynamic content
	TypeDelay   time.Duration // per-character typing delay
}

// DefaultTimeouts returns the timeouts the agent ships with: short for
// optional dialogs, seconds-scale for search boxes and results surfaces.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Popup:       800 * time.Millisecond,
		PopupSettle: 250 * time.Millisecond,
		Search:      5 * time.Second,
		Action:      2 * time.Second,
		Results:     8 * time.Second,
		Settle:      400 * time.Millisecond,
		TypeDelay:   15 * time.Millisecond,
	}
}

// Engine drives a live page from a routed destination to a reportable end
// state. It is a pipeline of best-effort stages, not a state machine: each
// stage may partially fail without aborting the run, because page markup is
// unpredictable and the task is exploratory search, not a transaction. The
// only fatal failure in the whole system is browser launch, which happens
// before an Engine exists.
type Engine struct {
	browser  interfaces.Browser
	profiles map[entities.Destination]entities.SiteProfile
	timeouts Timeouts
	logger   *logrus.Logger
}

// NewEngine - creates an engine over a page-driving capability.
func NewEngine(browser interfaces.Browser, logger *logrus.Logger, timeouts Timeouts) *Engine {
	return &Engine{
		browser:  browser,
		profiles: entities.SiteProfiles,
		timeouts: timeouts,
		logger:   logger,
	}
}

// Run executes the interaction pipeline against the routed destination:
// navigate, dismiss interstitials, submit the query through the first search
// selector candidate that works, wait for a results surface, then report the
// live page's URL and title. It always returns a report, even when every
// search candidate failed.
func (e *Engine) Run(ctx context.Context, routed entities.RoutedSite) entities.RunReport {
	report := entities.RunReport{
		Routed:        routed,
		SearchOutcome: entities.OutcomeNotFound,
	}

	e.logger.WithFields(logrus.Fields{
		"site": routed.Name,
		"url":  routed.URL,
	}).Info("Opening destination")

	if err := e.browser.Navigate(ctx, routed.URL); err != nil {
		// A failed initial load can still leave a partial page behind; absorb
		// and let the report stage read whatever state exists.
		e.logger.WithError(err).Warn("Initial navigation did not complete")
	}

	e.dismissPopups(ctx)

	profile := e.profiles[routed.Name]
	report.SearchOutcome = e.submitSearch(ctx, profile.SearchSelectors, routed.Query)
	report.Searched = report.SearchOutcome == entities.OutcomeApplied

	if report.Searched {
		e.awaitResults(ctx, profile.ResultSelectors)
	} else {
		e.logger.Warn("No search box candidate worked; reporting page state as reached")
	}

	if url, err := e.browser.CurrentURL(ctx); err == nil {
		report.FinalURL = url
	}
	if title, err := e.browser.Title(ctx); err == nil {
		report.FinalTitle = title
	}

	return report
}

// dismissPopups tries each generic dialog selector once, in order, with a
// short visibility check. Misses and errors are absorbed: interstitials are
// optional and vary by region and session. The per-candidate outcomes say why
// each candidate had no effect.
func (e *Engine) dismissPopups(ctx context.Context) []entities.Outcome {
	outcomes := make([]entities.Outcome, 0, len(entities.PopupSelectors))
	for _, sel := range entities.PopupSelectors {
		visible, err := e.browser.IsVisible(ctx, sel, e.timeouts.Popup)
		if err != nil {
			e.logger.WithError(err).WithField("selector", sel).Debug("Popup visibility check failed")
			outcomes = append(outcomes, entities.OutcomeIgnored)
			continue
		}
		if !visible {
			outcomes = append(outcomes, entities.OutcomeNotFound)
			continue
		}
		if err := e.browser.Click(ctx, sel, e.timeouts.Popup); err != nil {
			e.logger.WithError(err).WithField("selector", sel).Debug("Popup dismissal click failed")
			outcomes = append(outcomes, entities.OutcomeIgnored)
			continue
		}
		e.browser.Pause(ctx, e.timeouts.PopupSettle)
		e.logger.WithField("selector", sel).Info("Dismissed dialog")
		outcomes = append(outcomes, entities.OutcomeApplied)
	}
	return outcomes
}

// submitSearch walks the destination's search-box candidates in order and
// drives the first one that survives the full click/clear/type/submit
// sequence. A failure at any step abandons that candidate only; earlier
// candidates are never retried.
func (e *Engine) submitSearch(ctx context.Context, selectors []string, query string) entities.Outcome {
	outcome := entities.OutcomeNotFound
	for _, sel := range selectors {
		if err := e.browser.WaitVisible(ctx, sel, e.timeouts.Search); err != nil {
			e.logger.WithField("selector", sel).Debug("Search box candidate not visible")
			continue
		}
		if err := e.submitVia(ctx, sel, query); err != nil {
			e.logger.WithError(err).WithField("selector", sel).Debug("Search box candidate failed")
			outcome = entities.OutcomeIgnored
			continue
		}
		e.logger.WithField("selector", sel).Info("Search submitted")
		return entities.OutcomeApplied
	}
	return outcome
}

// submitVia types the query into one candidate character by character - some
// sites only react to real keyboard-style input events - then submits with
// Enter.
func (e *Engine) submitVia(ctx context.Context, selector, query string) error {
	if err := e.browser.Click(ctx, selector, e.timeouts.Action); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	if err := e.browser.Clear(ctx, selector, e.timeouts.Action); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	if err := e.browser.TypeText(ctx, selector, query, e.timeouts.TypeDelay); err != nil {
		return fmt.Errorf("type: %w", err)
	}
	if err := e.browser.Press(ctx, selector, "Enter"); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

// awaitResults paces the run until a results surface shows up: wait for the
// post-search document parse, clear any post-search dialogs, then wait for
// the first visible results indicator. Advisory only - if nothing appears
// within the bounds, the pipeline proceeds to report anyway.
func (e *Engine) awaitResults(ctx context.Context, selectors []string) entities.Outcome {
	if err := e.browser.WaitForLoad(ctx); err != nil {
		e.logger.WithError(err).Debug("Post-search load wait failed")
	}
	e.dismissPopups(ctx)

	outcome := entities.OutcomeNotFound
	for _, sel := range selectors {
		if err := e.browser.WaitVisible(ctx, sel, e.timeouts.Results); err != nil {
			continue
		}
		e.logger.WithField("selector", sel).Info("Results surface visible")
		outcome = entities.OutcomeApplied
		break
	}

	e.browser.Pause(ctx, e.timeouts.Settle)
	return outcome
}
