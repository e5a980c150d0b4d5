// Package devices knows the fixed device families: which collection each one
// stores its documents in, and how each family's telemetry payload is
// projected into the wire schema.
package devices

// Family tags as they appear in route paths.
const (
	FamilyMeter   = "sigmeter"
	FamilyLora    = "sigmeterlora"
	FamilyCurrent = "sigmeter4a20"
	FamilyOnOff   = "sigmeteronoff"
	FamilyPulse   = "sigpulse"
	FamilyPark    = "sigpark"
)

// EventCollections maps a route family tag to its telemetry collection.
var EventCollections = map[string]string{
	FamilyMeter:   "sigmeter_events",
	FamilyLora:    "sigmeterlora_events",
	FamilyPulse:   "sigpulse_events",
	FamilyPark:    "sigpark_events",
	FamilyOnOff:   "sigmetersl_events",
	FamilyCurrent: "sigmeter4a20_events",
}

// AlertCollections maps a route family tag to its alert collection.
var AlertCollections = map[string]string{
	FamilyMeter: "alert_events_sigmeters",
	FamilyOnOff: "alert_events_sigmeterSLs",
	FamilyLora:  "alert_events_sigmeterLORAs",
	FamilyPulse: "alert_events_sigmeterpulses",
	FamilyPark:  "alert_events_sigparks",
}

// DeviceCollection pairs a device collection with its family tag.
type DeviceCollection struct {
	Name   string
	Family string
}

// ScanOrder is the fixed probe order used when the family of a device is not
// known ahead of the query. The order is significant: the first collection
// returning a match wins, which fixes precedence if a UUID were ever
// duplicated across families.
var ScanOrder = []DeviceCollection{
	{Name: "sigmeterloras", Family: FamilyLora},
	{Name: "sigmeter4a20", Family: FamilyCurrent},
	{Name: "sigmeters", Family: FamilyMeter},
	{Name: "sigmetersls", Family: FamilyOnOff},
	{Name: "sigpulses", Family: FamilyPulse},
}
