package availability

import "shootscout/models"

// DayInput is everything the merger needs to compute one photographer's net open
// time for a target date.
type DayInput struct {
	Records []models.ScheduleRecord
	Booked  []models.BookedRange
	// PreNetted, when non-nil, is a net list already computed upstream; it is
	// preferred over local subtraction.
	PreNetted []models.TimeRange
	Date      string
}

// DayResult is the merged output for one photographer/date.
type DayResult struct {
	Available []models.TimeRange
	Net       []models.TimeRange
	Info      models.AvailabilityInfo
}

// MergeDay resolves a photographer's net availability for a date. Date-specific
// records take total precedence over weekly records: when any record matches the
// target date exactly, all weekly records are ignored rather than merged.
func MergeDay(in DayInput) DayResult {
	targetDate := NormalizeDate(in.Date)
	targetDay := DayOfWeekOf(targetDate)

	var specific, weekly []models.ScheduleRecord
	for _, rec := range in.Records {
		switch {
		case rec.Date != "" && NormalizeDate(rec.Date) == targetDate:
			specific = append(specific, rec)
		case rec.Date == "" && NormalizeDayOfWeek(rec.DayOfWeek) == targetDay && targetDay != "":
			weekly = append(weekly, rec)
		}
	}

	relevant := weekly
	if len(specific) > 0 {
		relevant = specific
	}

	var available []models.TimeRange
	for _, rec := range relevant {
		if !rec.Available() {
			continue
		}
		start := NormalizeTime(rec.StartTime)
		end := NormalizeTime(rec.EndTime)
		if start == "" || end == "" || TimeToMinutes(start) >= TimeToMinutes(end) {
			continue
		}
		available = append(available, models.TimeRange{StartTime: start, EndTime: end})
	}

	net := in.PreNetted
	if net == nil {
		booked := make([]models.TimeRange, 0, len(in.Booked))
		for _, b := range in.Booked {
			booked = append(booked, b.TimeRange)
		}
		net = Subtract(available, booked)
	}

	return DayResult{
		Available: available,
		Net:       net,
		Info:      Summarize(net),
	}
}

// Summarize condenses a net slot list into the display summary: availability flag
// plus up to three 12-hour display strings.
func Summarize(net []models.TimeRange) models.AvailabilityInfo {
	info := models.AvailabilityInfo{IsAvailable: len(net) > 0}
	for i, r := range net {
		if i == 3 {
			break
		}
		info.NextAvailableTimes = append(info.NextAvailableTimes,
			To12Hour(r.StartTime)+" - "+To12Hour(r.EndTime))
	}
	return info
}

// AvailableAt reports whether a clock time falls inside the net open ranges. The
// ranges are half-open, so a time equal to a booked slot's start is unavailable.
func AvailableAt(net []models.TimeRange, clock string) bool {
	if NormalizeTime(clock) == "" {
		return false
	}
	return ContainsMinute(net, TimeToMinutes(clock))
}
