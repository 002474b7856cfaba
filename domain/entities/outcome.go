package entities

// Outcome classifies why a best-effort step did or did not take effect.
type Outcome string

const (
	// OutcomeApplied - the step found its target and completed.
	OutcomeApplied Outcome = "applied"

	// OutcomeNotFound - no matching element became visible in time.
	OutcomeNotFound Outcome = "not_found"

	// OutcomeIgnored - the step hit an error that was absorbed.
	OutcomeIgnored Outcome = "ignored"
)

// RunReport is the end state of a run: the routing decision plus whatever the
// live page looked like once the pipeline ran out of work. FinalURL and
// FinalTitle are read from the page, not from the routed values, since the
// search or a redirect may have changed both.
type RunReport struct {
	Routed        RoutedSite `json:"routed"`
	FinalURL      string     `json:"final_url"`
	FinalTitle    string     `json:"final_title"`
	Searched      bool       `json:"searched"`
	SearchOutcome Outcome    `json:"search_outcome"`
}
