package cache

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryKeyIsDeterministic(t *testing.T) {
	a, _ := url.ParseQuery("uuid=dev-1&page=2&size=10")
	b, _ := url.ParseQuery("size=10&uuid=dev-1&page=2")

	keyA := QueryKey(EventsKeyPattern, "sigmeter_events", "company-1", a)
	keyB := QueryKey(EventsKeyPattern, "sigmeter_events", "company-1", b)
	assert.Equal(t, keyA, keyB, "parameter order must not change the key")
}

func TestQueryKeyScopesByCompany(t *testing.T) {
	params, _ := url.ParseQuery("uuid=dev-1")

	keyA := QueryKey(EventsKeyPattern, "sigmeter_events", "company-a", params)
	keyB := QueryKey(EventsKeyPattern, "sigmeter_events", "company-b", params)
	assert.NotEqual(t, keyA, keyB, "companies must never share cache entries")
}

func TestQueryKeySeparatesEndpoints(t *testing.T) {
	params, _ := url.ParseQuery("uuid=dev-1")

	events := QueryKey(EventsKeyPattern, "sigmeter_events", "company-a", params)
	alerts := QueryKey(AlertsKeyPattern, "alert_events_sigmeters", "company-a", params)
	assert.NotEqual(t, events, alerts)
}
