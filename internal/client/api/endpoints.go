package api

import "net/url"

// Endpoint is a logical API endpoint: a path relative to the base URL plus
// optional query parameters.
type Endpoint struct {
	Path  string
	Query url.Values
}

// Endpoint families observed across the two backend generations. The guest
// list is shared; the session list moved from the sched.org-style paths to
// /programming_events.
var (
	EndpointGuestList         = Endpoint{Path: "/guest_list/2/"}
	EndpointSchedEvents       = Endpoint{Path: "/sched_events"}
	EndpointSessionList       = Endpoint{Path: "/session/list"}
	EndpointProgrammingEvents = Endpoint{Path: "/programming_events"}
)

// SessionsEndpoint returns the session-list endpoint for an API family
// ("legacy" or "current"). Unknown values fall back to the current family.
func SessionsEndpoint(family string) Endpoint {
	if family == "legacy" {
		return EndpointSchedEvents
	}
	return EndpointProgrammingEvents
}
