package cache

import (
	"fmt"
	"net/url"
)

// Key patterns for the cached read endpoints. Every key carries the company
// scope so one tenant's cached responses are unreachable from another's
// requests.
const (
	EventsKeyPattern  = "events:%s:%s:%s"  // collection, company, query
	AlertsKeyPattern  = "alerts:%s:%s:%s"  // collection, company, query
	DevicesKeyPattern = "devices:%s:%s:%s" // endpoint, company, query
)

// QueryKey builds a deterministic cache key from a pattern, the target
// collection or endpoint, the authorized company and the full query
// parameter set. url.Values encoding sorts by key, so parameter order in the
// request URL cannot produce distinct cache entries.
func QueryKey(pattern, scope, companyID string, params url.Values) string {
	return fmt.Sprintf(pattern, scope, companyID, params.Encode())
}
