package models

// DistanceFrom indicates which origin a photographer's travel distance was measured from.
const (
	DistanceFromHome          = "home"
	DistanceFromPreviousShoot = "previous_shoot"
)

// Photographer is one roster entry plus the enrichment fields the resolver fills in
// over the course of a resolution cycle. Distance and IsAvailableAtTime are pointers
// so "not yet resolved" is distinguishable from zero/false.
type Photographer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`

	Distance          *float64      `json:"distance,omitempty"` // miles
	DistanceFrom      string        `json:"distanceFrom,omitempty"`
	Origin            Address       `json:"originAddress,omitzero"`
	AvailabilitySlots []TimeRange   `json:"availabilitySlots,omitempty"`
	BookedSlots       []BookedRange `json:"bookedSlots,omitempty"`
	NetAvailableSlots []TimeRange   `json:"netAvailableSlots,omitempty"`
	IsAvailableAtTime *bool         `json:"isAvailableAtTime,omitempty"`
	ShootsCountToday  int           `json:"shootsCountToday,omitempty"`
}

// RosterEntry is the minimal photographer identity supplied by the booking form.
type RosterEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
