package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// APIKey is the credential record checked on every authenticated request.
// At most one key per company is active at a time; regeneration deactivates
// the previous keys instead of deleting them.
type APIKey struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key       string             `bson:"key" json:"key"`
	CompanyID string             `bson:"companyId" json:"companyId"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the key's validity window has passed.
func (k *APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt.Before(now)
}

// GroupDevice is a device reference inside a group document.
type GroupDevice struct {
	UUID string `bson:"uuid" json:"uuid"`
	ID   string `bson:"id" json:"id"`
}

// Group owns the devices a company may query. A device UUID is readable by
// exactly the companies whose groups list it.
type Group struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyID  primitive.ObjectID `bson:"company_id" json:"companyId"`
	Name       string             `bson:"name" json:"name"`
	DeviceType string             `bson:"device_type,omitempty" json:"deviceType,omitempty"`
	Devices    []GroupDevice      `bson:"devices" json:"devices"`
	CreatedAt  *time.Time         `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Company is the owning entity for groups. Read-only here.
type Company struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// DeviceDetails carries the latest readings embedded in a device document.
type DeviceDetails struct {
	Temperature    *float64 `bson:"temperature,omitempty" json:"temperature,omitempty"`
	TemperatureEx1 *float64 `bson:"temperatureEx1,omitempty" json:"temperatureEx1,omitempty"`
	TemperatureEx2 *float64 `bson:"temperatureEx2,omitempty" json:"temperatureEx2,omitempty"`
	Humidity       *float64 `bson:"humidity,omitempty" json:"humidity,omitempty"`
}

// Device is the minimal projection shared by all per-family device
// collections. uuid is the stable cross-collection identifier; _id is
// storage-local.
type Device struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UUID      string             `bson:"uuid" json:"uuid"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Battery   *float64           `bson:"battery,omitempty" json:"battery,omitempty"`
	Details   *DeviceDetails     `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt *time.Time         `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// EventMetadata tags a telemetry document with its device and, for generic
// meters, the frame code selecting the sub-analysis.
type EventMetadata struct {
	DeviceID   string `bson:"deviceId" json:"deviceId"`
	DeviceUUID string `bson:"deviceUUID" json:"deviceUUID"`
	Frame      int    `bson:"frame" json:"frame"`
}

// EventData is the family-specific nested payload. Fields are pointers so
// absent readings stay absent in the normalized output.
type EventData struct {
	Humidity       *float64 `bson:"humidity,omitempty" json:"humidity,omitempty"`
	Temperature    *float64 `bson:"temperature,omitempty" json:"temperature,omitempty"`
	TemperatureEx1 *float64 `bson:"temperatureEx1,omitempty" json:"temperatureEx1,omitempty"`
	TemperatureEx2 *float64 `bson:"temperatureEx2,omitempty" json:"temperatureEx2,omitempty"`
	Count1         *int64   `bson:"count1,omitempty" json:"count1,omitempty"`
	Count2         *int64   `bson:"count2,omitempty" json:"count2,omitempty"`
	TimeCount1     *int64   `bson:"timeCount1,omitempty" json:"timeCount1,omitempty"`
	TimeCount2     *int64   `bson:"timeCount2,omitempty" json:"timeCount2,omitempty"`
	Current1       *float64 `bson:"current1,omitempty" json:"current1,omitempty"`
	Current2       *float64 `bson:"current2,omitempty" json:"current2,omitempty"`
	State1         *bool    `bson:"state1,omitempty" json:"state1,omitempty"`
	State2         *bool    `bson:"state2,omitempty" json:"state2,omitempty"`
	Battery        *float64 `bson:"battery,omitempty" json:"battery,omitempty"`
	SensorUID      *string  `bson:"sensorUid,omitempty" json:"sensorUid,omitempty"`
}

// EventInput wraps the message and data sections of a telemetry document.
type EventInput struct {
	Message string    `bson:"message,omitempty" json:"message,omitempty"`
	Data    EventData `bson:"data" json:"data"`
}

// EventBody is the event sub-document of a telemetry record.
type EventBody struct {
	Input EventInput `bson:"input" json:"input"`
}

// RawEvent is a telemetry document as stored, keyed by (deviceUUID,
// timestamp). Immutable once written.
type RawEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Metadata  EventMetadata      `bson:"metadata" json:"metadata"`
	Event     EventBody          `bson:"event" json:"event"`
}
