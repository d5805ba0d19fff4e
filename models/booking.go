package models

import "strings"

// BookingTarget is the shoot a roster of photographers is being resolved against.
type BookingTarget struct {
	Address
	Date string `json:"date"` // "2006-01-02"
	Time string `json:"time"` // "HH:MM" or "hh:mm AM/PM", may be empty
}

// CycleKey is the identity of a BookingTarget for caching and supersede decisions.
// Two targets with equal keys describe the same resolution input.
func (t BookingTarget) CycleKey() string {
	return strings.Join([]string{t.Date, t.Time, t.Address.Key()}, "|")
}

// ResolutionState tells the presentation layer which enrichment pass is still running.
type ResolutionState string

const (
	ResolutionLoadingAvailability ResolutionState = "loading-availability"
	ResolutionLoadingDistance     ResolutionState = "loading-distance"
	ResolutionSettled             ResolutionState = "settled"
)

// ResolutionSnapshot is the last-committed output of a resolution cycle. It stays
// visible to the consumer until a newer cycle overwrites it.
type ResolutionSnapshot struct {
	State         ResolutionState `json:"state"`
	Photographers []Photographer  `json:"photographers"`
	Availability  AvailabilityMap `json:"availability"`
	Notice        string          `json:"notice,omitempty"` // non-fatal degradation message
}

// Clone returns a deep copy so callers can read a snapshot without racing commits.
func (s ResolutionSnapshot) Clone() ResolutionSnapshot {
	out := ResolutionSnapshot{State: s.State, Notice: s.Notice}
	out.Photographers = make([]Photographer, len(s.Photographers))
	copy(out.Photographers, s.Photographers)
	if s.Availability != nil {
		out.Availability = make(AvailabilityMap, len(s.Availability))
		for k, v := range s.Availability {
			out.Availability[k] = v
		}
	}
	return out
}
