package models

import "time"

// MediaItem represents a photo or video with its precomputed metadata.
// The clustering engine only reads media items; all analysis attributes
// (faces, quality, POI tags) arrive already computed by upstream ingestion.
type MediaItem struct {
	ID   int64  `json:"id" db:"id"`
	Path string `json:"path" db:"path"`

	// Capture time, timezone-aware. Nil when the file carries no usable
	// timestamp.
	TakenAt *time.Time `json:"takenAt,omitempty" db:"taken_at"`

	// GPS coordinates. Both nil or both set.
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	// Timezone offset of the capture location in minutes, when known.
	TZOffsetMinutes *int `json:"tzOffsetMinutes,omitempty" db:"tz_offset_minutes"`

	// Resolved location attributes (optional, from the geocoding pipeline).
	GeoCell     string `json:"geoCell,omitempty" db:"geo_cell"`
	CountryCode string `json:"countryCode,omitempty" db:"country_code"`

	// POI attributes (optional).
	HasPOI       bool `json:"hasPoi" db:"has_poi"`
	TourismPOI   bool `json:"tourismPoi" db:"tourism_poi"`
	AirportPOI   bool `json:"airportPoi" db:"airport_poi"`

	// Per-photo analysis flags.
	HasFaces bool     `json:"hasFaces" db:"has_faces"`
	Quality  *float64 `json:"quality,omitempty" db:"quality"` // 0..1

	// Recognized people in the photo (stable person identifiers).
	PersonIDs []string `json:"personIds,omitempty" db:"-"`

	// Capture device model string, when known.
	DeviceModel string `json:"deviceModel,omitempty" db:"device_model"`
}

// HasGPS reports whether the item carries a coordinate.
func (m *MediaItem) HasGPS() bool {
	return m.Latitude != nil && m.Longitude != nil
}

// HasTime reports whether the item carries a capture timestamp.
func (m *MediaItem) HasTime() bool {
	return m.TakenAt != nil
}

// LocalTime returns the capture time shifted into the item's own timezone
// offset when one is known, otherwise the timestamp as stored.
func (m *MediaItem) LocalTime() (time.Time, bool) {
	if m.TakenAt == nil {
		return time.Time{}, false
	}
	t := *m.TakenAt
	if m.TZOffsetMinutes != nil {
		t = t.In(time.FixedZone("", *m.TZOffsetMinutes*60))
	}
	return t, true
}

// MediaItemsResponse represents a paginated response of media items
type MediaItemsResponse struct {
	Data       []MediaItem `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// MediaItemFilter represents filter parameters for querying media items
type MediaItemFilter struct {
	StartTime int64 `form:"startTime"` // Unix timestamp
	EndTime   int64 `form:"endTime"`   // Unix timestamp
	WithGPS   bool  `form:"withGps"`
	Page      int   `form:"page"`
	PageSize  int   `form:"pageSize"`
}
