package availability

import (
	"fmt"
	"sort"

	"shootscout/models"
)

// span is a half-open minute interval [Start, End).
type span struct {
	Start int
	End   int
}

func toSpan(r models.TimeRange) span {
	return span{Start: TimeToMinutes(r.StartTime), End: TimeToMinutes(r.EndTime)}
}

func toRange(s span) models.TimeRange {
	return models.TimeRange{StartTime: minutesToClock(s.Start), EndTime: minutesToClock(s.End)}
}

func minutesToClock(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", (m/60)%24, m%60)
}

// Subtract removes every booked range from the available ranges. A single booked
// range may leave zero, one, or two remainders of the range it overlaps. The result
// is sorted by start time; empty and inverted inputs are dropped.
func Subtract(available []models.TimeRange, booked []models.TimeRange) []models.TimeRange {
	remaining := make([]span, 0, len(available))
	for _, r := range available {
		s := toSpan(r)
		if s.Start < s.End {
			remaining = append(remaining, s)
		}
	}

	for _, b := range booked {
		cut := toSpan(b)
		if cut.Start >= cut.End {
			continue
		}
		next := make([]span, 0, len(remaining)+1)
		for _, s := range remaining {
			if cut.End <= s.Start || s.End <= cut.Start {
				next = append(next, s)
				continue
			}
			if s.Start < cut.Start {
				next = append(next, span{Start: s.Start, End: cut.Start})
			}
			if cut.End < s.End {
				next = append(next, span{Start: cut.End, End: s.End})
			}
		}
		remaining = next
	}

	sort.Slice(remaining, func(i, j int) bool { return remaining[i].Start < remaining[j].Start })

	out := make([]models.TimeRange, 0, len(remaining))
	for _, s := range remaining {
		out = append(out, toRange(s))
	}
	return out
}

// ContainsMinute reports whether minute m falls inside any of the ranges, treating
// each range as half-open: the end minute itself is outside.
func ContainsMinute(ranges []models.TimeRange, m int) bool {
	for _, r := range ranges {
		if TimeToMinutes(r.StartTime) <= m && m < TimeToMinutes(r.EndTime) {
			return true
		}
	}
	return false
}
