package models

// TimeRange is one contiguous block of time within a day. Start and end are stored in
// normalized "HH:MM" 24-hour form; StartTime < EndTime within the same day.
type TimeRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// BookedRange is a time range already taken by an existing shoot.
type BookedRange struct {
	TimeRange
	ShootID string `json:"shoot_id,omitempty"`
}

// ScheduleRecord is one raw availability record from the schedule data source. A record
// is either date-specific (Date set, applies to that calendar date only) or recurring
// weekly (Date empty, DayOfWeek set). A Status other than "available" (absent counts
// as available) marks the slot unavailable.
type ScheduleRecord struct {
	Date      string `json:"date,omitempty"`
	DayOfWeek string `json:"day_of_week,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status,omitempty"`
}

// ScheduleStatusAvailable is the only ScheduleRecord status that counts as open time.
const ScheduleStatusAvailable = "available"

// Available reports whether the record represents open time.
func (r ScheduleRecord) Available() bool {
	return r.Status == "" || r.Status == ScheduleStatusAvailable
}

// AvailabilityInfo is the per-photographer summary produced by the merger.
type AvailabilityInfo struct {
	IsAvailable        bool     `json:"isAvailable"`
	NextAvailableTimes []string `json:"nextAvailableTimes,omitempty"`
}

// AvailabilityMap looks up availability summaries by photographer id. Keys are
// canonicalized on both write and read, so callers may probe with any id form the
// upstream sources use (string, numeric, float-decoded).
type AvailabilityMap map[string]AvailabilityInfo

// Set stores info under the canonical form of id.
func (m AvailabilityMap) Set(id any, info AvailabilityInfo) {
	if key := CanonicalID(id); key != "" {
		m[key] = info
	}
}

// Get returns the info for any form of id.
func (m AvailabilityMap) Get(id any) (AvailabilityInfo, bool) {
	info, ok := m[CanonicalID(id)]
	return info, ok
}
