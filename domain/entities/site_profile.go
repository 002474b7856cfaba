package entities

// SiteProfile holds the static interaction data for one destination: its base
// URL, the ordered search-box selector candidates and the ordered selectors
// whose visibility indicates a results surface was reached. Candidate order
// matters: the engine stops at the first selector that works.
type SiteProfile struct {
	BaseURL         string
	SearchSelectors []string
	ResultSelectors []string
}

// SiteProfiles maps every destination the router can produce to its profile.
// DestLocal has no fixed base URL; the caller supplies a start URL instead.
var SiteProfiles = map[Destination]SiteProfile{
	DestMovies: {
		BaseURL: "https://in.bookmyshow.com/",
		SearchSelectors: []string{
			"input[placeholder*='Search']",
			"input[aria-label*='Search']",
			"input[type='search']",
			"input[name='search']",
		},
		ResultSelectors: []string{
			"div:has-text('Movies')",
			"section",
			"main",
		},
	},
	DestTravel: {
		BaseURL: "https://www.google.com/travel/flights",
		SearchSelectors: []string{
			"input[aria-label='Where from?']",
			"input[aria-label='Where to?']",
			"input[role='combobox']",
			"input[type='text']",
		},
		ResultSelectors: []string{
			"div[role='main']",
			"main",
		},
	},
	DestFood: {
		BaseURL: "https://www.google.com/maps",
		SearchSelectors: []string{
			"input#searchboxinput",
			"input[aria-label='Search Google Maps']",
			"input[role='combobox']",
		},
		ResultSelectors: []string{
			"div[role='main']",
			"#pane",
		},
	},
	DestShopping: {
		BaseURL: "https://www.amazon.com/",
		SearchSelectors: []string{
			"input#twotabsearchtextbox",
			"input[name='field-keywords']",
			"input[type='search']",
		},
		ResultSelectors: []string{
			"div.s-main-slot",
			"#search",
		},
	},
	DestSearch: {
		BaseURL: "https://www.google.com/",
		SearchSelectors: []string{
			"textarea[name='q']",
			"input[name='q']",
			"input[type='search']",
		},
		ResultSelectors: []string{
			"#search",
			"div#rso",
		},
	},
	DestLocal: {
		SearchSelectors: []string{
			"input[type='search']",
			"input[placeholder*='search' i]",
			"input[aria-label*='search' i]",
			"input[name*='search' i]",
			"textarea[placeholder*='search' i]",
		},
		ResultSelectors: []string{
			"main",
			"#root",
			"#app",
			"body",
		},
	},
}

// PopupSelectors are generic consent/dialog dismissal candidates tried in
// order on every page before interacting with it. Most pages show none of
// them; each is strictly best-effort.
var PopupSelectors = []string{
	"button:has-text('Accept all')",
	"button:has-text('I agree')",
	"button:has-text('Accept')",
	"button:has-text('Agree')",
	"button:has-text('Got it')",
	"button[aria-label='Close']",
	"button[aria-label='close']",
	"[aria-label='Close']",
	"[aria-label='close']",
	"button:has-text('No thanks')",
}
