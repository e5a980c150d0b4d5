package devices

import (
	"time"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/models"
)

// notAvailable is the reading a sensor reports when a channel probe is
// disconnected or out of range. It is never a real temperature and must not
// reach the wire as a number; affected fields are nulled instead.
const notAvailable = -128

// frameLabels maps a generic-meter frame code to the sub-analysis it carries.
// Records with any other frame code are dropped from output.
var frameLabels = map[int]string{
	1: "temperature",
	2: "counter",
	3: "parameters",
	7: "sensor_id",
}

// NormalizeFunc projects one raw telemetry document into the family's output
// record. ok is false when the record carries nothing this family exposes.
type NormalizeFunc func(models.RawEvent) (interface{}, bool)

// Normalizer returns the mapping function for a family tag. Families without
// a fixed mapping fall back to passing the raw metadata and event
// sub-documents through unchanged.
func Normalizer(family string) NormalizeFunc {
	if fn, ok := normalizers[family]; ok {
		return fn
	}
	return normalizePassthrough
}

var normalizers = map[string]NormalizeFunc{
	FamilyMeter:   normalizeMeter,
	FamilyLora:    normalizeLora,
	FamilyCurrent: normalizeCurrent,
	FamilyOnOff:   normalizeOnOff,
	FamilyPulse:   normalizePulse,
}

// MeterEvent is the output record for generic meters, discriminated by frame.
type MeterEvent struct {
	Timestamp           time.Time `json:"timestamp"`
	DeviceID            string    `json:"device_id"`
	DeviceUUID          string    `json:"device_uuid"`
	Analysis            string    `json:"analysis"`
	Message             string    `json:"message,omitempty"`
	AmbientHumidity     *float64  `json:"ambient_humidity"`
	AmbientTemperature  *float64  `json:"ambient_temperature"`
	Channel1Temperature *float64  `json:"channel_1_temperature"`
	Channel2Temperature *float64  `json:"channel_2_temperature"`
	Channel1Count       *int64    `json:"channel_1_count"`
	Channel2Count       *int64    `json:"channel_2_count"`
	Channel1TimeCount   *int64    `json:"channel_1_accumulated"`
	Channel2TimeCount   *int64    `json:"channel_2_accumulated"`
	SensorUUID          *string   `json:"sensor_uuid"`
}

func normalizeMeter(ev models.RawEvent) (interface{}, bool) {
	analysis, ok := frameLabels[ev.Metadata.Frame]
	if !ok {
		return nil, false
	}
	d := ev.Event.Input.Data
	return MeterEvent{
		Timestamp:           ev.Timestamp,
		DeviceID:            ev.Metadata.DeviceID,
		DeviceUUID:          ev.Metadata.DeviceUUID,
		Analysis:            analysis,
		Message:             ev.Event.Input.Message,
		AmbientHumidity:     d.Humidity,
		AmbientTemperature:  d.Temperature,
		Channel1Temperature: channelTemp(d.TemperatureEx1),
		Channel2Temperature: channelTemp(d.TemperatureEx2),
		Channel1Count:       d.Count1,
		Channel2Count:       d.Count2,
		Channel1TimeCount:   d.TimeCount1,
		Channel2TimeCount:   d.TimeCount2,
		SensorUUID:          d.SensorUID,
	}, true
}

// LoraEvent is the output record for LoRa meters.
type LoraEvent struct {
	Timestamp           time.Time `json:"timestamp"`
	DeviceID            string    `json:"device_id"`
	DeviceUUID          string    `json:"device_uuid"`
	Message             string    `json:"message,omitempty"`
	AmbientHumidity     *float64  `json:"ambient_humidity"`
	AmbientTemperature  *float64  `json:"ambient_temperature"`
	Channel1Temperature *float64  `json:"channel_1_temperature"`
	Channel2Temperature *float64  `json:"channel_2_temperature"`
	Battery             *float64  `json:"battery"`
}

func normalizeLora(ev models.RawEvent) (interface{}, bool) {
	d := ev.Event.Input.Data
	return LoraEvent{
		Timestamp:           ev.Timestamp,
		DeviceID:            ev.Metadata.DeviceID,
		DeviceUUID:          ev.Metadata.DeviceUUID,
		Message:             ev.Event.Input.Message,
		AmbientHumidity:     d.Humidity,
		AmbientTemperature:  d.Temperature,
		Channel1Temperature: channelTemp(d.TemperatureEx1),
		Channel2Temperature: channelTemp(d.TemperatureEx2),
		Battery:             d.Battery,
	}, true
}

// CurrentLoopEvent is the output record for 4-20mA meters.
type CurrentLoopEvent struct {
	Timestamp       time.Time `json:"timestamp"`
	DeviceID        string    `json:"device_id"`
	DeviceUUID      string    `json:"device_uuid"`
	Message         string    `json:"message,omitempty"`
	Channel1Current *float64  `json:"channel_1_current"`
	Channel2Current *float64  `json:"channel_2_current"`
	Battery         *float64  `json:"battery"`
}

func normalizeCurrent(ev models.RawEvent) (interface{}, bool) {
	d := ev.Event.Input.Data
	return CurrentLoopEvent{
		Timestamp:       ev.Timestamp,
		DeviceID:        ev.Metadata.DeviceID,
		DeviceUUID:      ev.Metadata.DeviceUUID,
		Message:         ev.Event.Input.Message,
		Channel1Current: d.Current1,
		Channel2Current: d.Current2,
		Battery:         d.Battery,
	}, true
}

// OnOffEvent is the output record for on/off meters.
type OnOffEvent struct {
	Timestamp         time.Time `json:"timestamp"`
	DeviceID          string    `json:"device_id"`
	DeviceUUID        string    `json:"device_uuid"`
	Message           string    `json:"message,omitempty"`
	Channel1State     *bool     `json:"channel_1_state"`
	Channel2State     *bool     `json:"channel_2_state"`
	Channel1TimeCount *int64    `json:"channel_1_accumulated"`
	Channel2TimeCount *int64    `json:"channel_2_accumulated"`
	Battery           *float64  `json:"battery"`
}

func normalizeOnOff(ev models.RawEvent) (interface{}, bool) {
	d := ev.Event.Input.Data
	return OnOffEvent{
		Timestamp:         ev.Timestamp,
		DeviceID:          ev.Metadata.DeviceID,
		DeviceUUID:        ev.Metadata.DeviceUUID,
		Message:           ev.Event.Input.Message,
		Channel1State:     d.State1,
		Channel2State:     d.State2,
		Channel1TimeCount: d.TimeCount1,
		Channel2TimeCount: d.TimeCount2,
		Battery:           d.Battery,
	}, true
}

// PulseEvent is the output record for pulse counters.
type PulseEvent struct {
	Timestamp         time.Time `json:"timestamp"`
	DeviceID          string    `json:"device_id"`
	DeviceUUID        string    `json:"device_uuid"`
	Message           string    `json:"message,omitempty"`
	Channel1Count     *int64    `json:"channel_1_count"`
	Channel2Count     *int64    `json:"channel_2_count"`
	Channel1TimeCount *int64    `json:"channel_1_accumulated"`
	Channel2TimeCount *int64    `json:"channel_2_accumulated"`
	Battery           *float64  `json:"battery"`
}

func normalizePulse(ev models.RawEvent) (interface{}, bool) {
	d := ev.Event.Input.Data
	return PulseEvent{
		Timestamp:         ev.Timestamp,
		DeviceID:          ev.Metadata.DeviceID,
		DeviceUUID:        ev.Metadata.DeviceUUID,
		Message:           ev.Event.Input.Message,
		Channel1Count:     d.Count1,
		Channel2Count:     d.Count2,
		Channel1TimeCount: d.TimeCount1,
		Channel2TimeCount: d.TimeCount2,
		Battery:           d.Battery,
	}, true
}

// normalizePassthrough keeps the raw sub-documents for families with no fixed
// mapping.
func normalizePassthrough(ev models.RawEvent) (interface{}, bool) {
	return map[string]interface{}{
		"timestamp": ev.Timestamp,
		"metadata":  ev.Metadata,
		"event":     ev.Event,
	}, true
}

// Normalize applies the family mapping to a batch, dropping records the
// family does not expose.
func Normalize(family string, events []models.RawEvent) []interface{} {
	fn := Normalizer(family)
	out := make([]interface{}, 0, len(events))
	for _, ev := range events {
		if rec, ok := fn(ev); ok {
			out = append(out, rec)
		}
	}
	return out
}

func channelTemp(v *float64) *float64 {
	if v != nil && *v == notAvailable {
		return nil
	}
	return v
}
