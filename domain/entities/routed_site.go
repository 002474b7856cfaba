package entities

// Destination is one of the fixed set of sites the router can choose.
type Destination string

const (
	DestMovies   Destination = "BookMyShow"
	DestTravel   Destination = "Google Flights"
	DestFood     Destination = "Google Maps"
	DestShopping Destination = "Amazon"
	DestSearch   Destination = "Google Search"
	DestLocal    Destination = "Local"
)

// RoutedSite is the routing outcome: where to go and what to search for once
// there. Produced once by the router, consumed once by the engine.
type RoutedSite struct {
	Name  Destination `json:"name"`
	URL   string      `json:"url"`
	Query string      `json:"query"`
}
