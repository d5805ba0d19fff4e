package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"shootscout/models"
)

var dayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// NormalizeTime converts a 12-hour or 24-hour clock string to zero-padded "HH:MM".
// Empty or unparseable input yields "" and callers must treat that as "no time".
func NormalizeTime(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	upper := strings.ToUpper(s)
	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}

	hourPart, minPart, ok := strings.Cut(s, ":")
	if !ok {
		minPart = "0"
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return ""
	}
	min, err := strconv.Atoi(strings.TrimSpace(minPart))
	if err != nil {
		return ""
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return ""
	}

	switch meridiem {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, min)
}

// TimeToMinutes converts a clock string to minutes from midnight. Unparseable input
// yields 0 rather than an error; the sources occasionally carry junk times and the
// merger treats them as midnight.
func TimeToMinutes(value string) int {
	norm := NormalizeTime(value)
	if norm == "" {
		return 0
	}
	hour, _ := strconv.Atoi(norm[:2])
	min, _ := strconv.Atoi(norm[3:])
	return hour*60 + min
}

// To12Hour renders a clock string in "h:MM AM/PM" display form.
func To12Hour(value string) string {
	norm := NormalizeTime(value)
	if norm == "" {
		return ""
	}
	hour, _ := strconv.Atoi(norm[:2])
	meridiem := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%s %s", hour, norm[3:], meridiem)
}

// NormalizeDayOfWeek maps numeric strings 0-6 (0 = Sunday), 3-letter abbreviations,
// and full English day names to a canonical lowercase day name. Unrecognized input
// passes through unchanged.
func NormalizeDayOfWeek(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return ""
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 6 {
		return dayNames[n]
	}
	for _, name := range dayNames {
		if s == name || s == name[:3] {
			return name
		}
	}
	return value
}

// DayOfWeekOf returns the canonical lowercase day name for a "2006-01-02" date,
// or "" when the date does not parse.
func DayOfWeekOf(date string) string {
	t, err := time.Parse("2006-01-02", NormalizeDate(date))
	if err != nil {
		return ""
	}
	return dayNames[int(t.Weekday())]
}

// NormalizeDate reduces a date string to its "2006-01-02" prefix, tolerating
// timestamp suffixes some sources append.
func NormalizeDate(date string) string {
	s := strings.TrimSpace(date)
	if len(s) > 10 {
		s = s[:10]
	}
	return s
}

// RangesOverlap reports half-open interval overlap: touching endpoints do not overlap.
func RangesOverlap(a, b models.TimeRange) bool {
	return TimeToMinutes(a.StartTime) < TimeToMinutes(b.EndTime) &&
		TimeToMinutes(b.StartTime) < TimeToMinutes(a.EndTime)
}

// Default working-day window for the availability bar.
const (
	DefaultDayStartHour = 8
	DefaultDayEndHour   = 20
)

// BuildSegments buckets slots into per-hour booleans between dayStartHour and
// dayEndHour, true when any slot overlaps the hour. Visualization only; availability
// decisions come from the merger.
func BuildSegments(slots []models.TimeRange, dayStartHour, dayEndHour int) []bool {
	if dayEndHour <= dayStartHour {
		return nil
	}
	segments := make([]bool, dayEndHour-dayStartHour)
	for i := range segments {
		bucketStart := (dayStartHour + i) * 60
		bucketEnd := bucketStart + 60
		for _, slot := range slots {
			if TimeToMinutes(slot.StartTime) < bucketEnd && bucketStart < TimeToMinutes(slot.EndTime) {
				segments[i] = true
				break
			}
		}
	}
	return segments
}
