package router

import (
	"strings"

	"web_task_agent/domain/entities"
)

// rule pairs a match predicate with the destination it selects. Rules are
// evaluated top-down and the first match wins; there is no scoring, so a task
// like "buy movie tickets" resolves to the movies rule, which comes first.
type rule struct {
	dest  entities.Destination
	match func(task, prefs string) bool
}

var rules = []rule{
	{entities.DestMovies, func(task, _ string) bool {
		return containsAny(task, "movie", "tickets", "showtime", "show time", "cinema", "bookmyshow")
	}},
	{entities.DestTravel, func(task, _ string) bool {
		return containsAny(task, "flight", "flights", "train", "bus", "hotel", "hotels", "trip", "google flights")
	}},
	{entities.DestFood, func(task, _ string) bool {
		return containsAny(task, "restaurant", "restaurants", "cafe", "cafes", "food", "dinner", "lunch", "breakfast", "maps")
	}},
	{entities.DestShopping, func(task, prefs string) bool {
		return containsAny(task, "buy", "price", "shop", "shopping", "order", "amazon", "flipkart") ||
			strings.Contains(prefs, "amazon")
	}},
}

// Route classifies a task request into a destination and assembled query.
// It is total and pure: same request, same routed site, always.
//
// Query assembly is deliberately asymmetric per destination - only the hints
// that destination actually uses are appended. Movies take location then
// date/time, travel takes date/time only, food takes location only, shopping
// takes nothing, and the fallback web search takes location. Destinations
// treat the other fields as search noise.
func Route(req entities.TaskRequest) entities.RoutedSite {
	task := normalize(req.Task)
	prefs := normalize(req.Preferences)

	dest := entities.DestSearch
	for _, r := range rules {
		if r.match(task, prefs) {
			dest = r.dest
			break
		}
	}

	query := req.Task
	switch dest {
	case entities.DestMovies:
		query = appendFields(query, req.Location, req.DateTime)
	case entities.DestTravel:
		query = appendFields(query, req.DateTime)
	case entities.DestFood:
		query = appendFields(query, req.Location)
	case entities.DestShopping:
		// marketplace search works best with the bare task text
	default:
		query = appendFields(query, req.Location)
	}

	return entities.RoutedSite{
		Name:  dest,
		URL:   entities.SiteProfiles[dest].BaseURL,
		Query: query,
	}
}

// Local builds the synthetic override destination: classification is bypassed
// and the raw task text is used as the query against startURL. Used for
// running against arbitrary local pages.
func Local(req entities.TaskRequest, startURL string) entities.RoutedSite {
	return entities.RoutedSite{
		Name:  entities.DestLocal,
		URL:   startURL,
		Query: req.Task,
	}
}

// normalize collapses whitespace, trims and lower-cases free text so that
// classification does not depend on formatting.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func appendFields(query string, fields ...string) string {
	for _, f := range fields {
		if f != "" {
			query = query + " " + f
		}
	}
	return query
}
