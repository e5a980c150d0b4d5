package devices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oscar-Sigmais/REST-API-CLIENT/internal/models"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func boolp(v bool) *bool     { return &v }
func strp(v string) *string  { return &v }

func meterEvent(frame int) models.RawEvent {
	return models.RawEvent{
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Metadata: models.EventMetadata{
			DeviceID:   "42",
			DeviceUUID: "dev-1",
			Frame:      frame,
		},
		Event: models.EventBody{
			Input: models.EventInput{
				Message: "uplink",
				Data: models.EventData{
					Humidity:       f64(51.2),
					Temperature:    f64(23.5),
					TemperatureEx1: f64(18.0),
					TemperatureEx2: f64(-128),
					Count1:         i64(10),
					Count2:         i64(20),
					SensorUID:      strp("sensor-9"),
				},
			},
		},
	}
}

func TestMeterFrameLabels(t *testing.T) {
	tests := []struct {
		frame    int
		analysis string
	}{
		{1, "temperature"},
		{2, "counter"},
		{3, "parameters"},
		{7, "sensor_id"},
	}

	for _, tt := range tests {
		rec, ok := Normalizer(FamilyMeter)(meterEvent(tt.frame))
		require.True(t, ok, "frame %d must be kept", tt.frame)
		assert.Equal(t, tt.analysis, rec.(MeterEvent).Analysis)
	}
}

func TestMeterDropsUnknownFrames(t *testing.T) {
	for _, frame := range []int{0, 4, 5, 6, 8, 99} {
		_, ok := Normalizer(FamilyMeter)(meterEvent(frame))
		assert.False(t, ok, "frame %d must be dropped", frame)
	}
}

func TestChannelTemperatureSentinel(t *testing.T) {
	t.Run("meter", func(t *testing.T) {
		rec, ok := Normalizer(FamilyMeter)(meterEvent(1))
		require.True(t, ok)
		out := rec.(MeterEvent)
		assert.Equal(t, f64(18.0), out.Channel1Temperature)
		assert.Nil(t, out.Channel2Temperature, "-128 must become null")
	})

	t.Run("lora", func(t *testing.T) {
		ev := meterEvent(1)
		rec, ok := Normalizer(FamilyLora)(ev)
		require.True(t, ok)
		out := rec.(LoraEvent)
		assert.Equal(t, f64(18.0), out.Channel1Temperature)
		assert.Nil(t, out.Channel2Temperature, "-128 must become null")
	})
}

func TestLoraIgnoresFrame(t *testing.T) {
	// LoRa meters have no frame discrimination; every record is kept.
	_, ok := Normalizer(FamilyLora)(meterEvent(99))
	assert.True(t, ok)
}

func TestCurrentLoopMapping(t *testing.T) {
	ev := meterEvent(1)
	ev.Event.Input.Data.Current1 = f64(4.2)
	ev.Event.Input.Data.Current2 = f64(19.8)
	ev.Event.Input.Data.Battery = f64(3.1)

	rec, ok := Normalizer(FamilyCurrent)(ev)
	require.True(t, ok)
	out := rec.(CurrentLoopEvent)
	assert.Equal(t, f64(4.2), out.Channel1Current)
	assert.Equal(t, f64(19.8), out.Channel2Current)
	assert.Equal(t, f64(3.1), out.Battery)
	assert.Equal(t, "dev-1", out.DeviceUUID)
}

func TestOnOffMapping(t *testing.T) {
	ev := meterEvent(1)
	ev.Event.Input.Data.State1 = boolp(true)
	ev.Event.Input.Data.State2 = boolp(false)
	ev.Event.Input.Data.TimeCount1 = i64(3600)

	rec, ok := Normalizer(FamilyOnOff)(ev)
	require.True(t, ok)
	out := rec.(OnOffEvent)
	assert.Equal(t, boolp(true), out.Channel1State)
	assert.Equal(t, boolp(false), out.Channel2State)
	assert.Equal(t, i64(3600), out.Channel1TimeCount)
}

func TestPulseMapping(t *testing.T) {
	rec, ok := Normalizer(FamilyPulse)(meterEvent(2))
	require.True(t, ok)
	out := rec.(PulseEvent)
	assert.Equal(t, i64(10), out.Channel1Count)
	assert.Equal(t, i64(20), out.Channel2Count)
}

func TestUnknownFamilyPassesThrough(t *testing.T) {
	ev := meterEvent(1)
	rec, ok := Normalizer(FamilyPark)(ev)
	require.True(t, ok)

	out, isMap := rec.(map[string]interface{})
	require.True(t, isMap, "unknown family keeps raw sub-documents")
	assert.Equal(t, ev.Metadata, out["metadata"])
	assert.Equal(t, ev.Event, out["event"])
}

func TestNormalizeBatchDropsUnmappedRecords(t *testing.T) {
	events := []models.RawEvent{meterEvent(1), meterEvent(5), meterEvent(2)}
	out := Normalize(FamilyMeter, events)
	require.Len(t, out, 2)
	assert.Equal(t, "temperature", out[0].(MeterEvent).Analysis)
	assert.Equal(t, "counter", out[1].(MeterEvent).Analysis)
}

func TestScanOrderIsFixed(t *testing.T) {
	expected := []string{"sigmeterloras", "sigmeter4a20", "sigmeters", "sigmetersls", "sigpulses"}
	require.Len(t, ScanOrder, len(expected))
	for i, probe := range ScanOrder {
		assert.Equal(t, expected[i], probe.Name)
	}
}
