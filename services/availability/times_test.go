package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shootscout/models"
)

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"24h already normalized", "09:00", "09:00"},
		{"24h unpadded", "9:5", "09:05"},
		{"afternoon 24h", "14:30", "14:30"},
		{"12h pm", "2:00 PM", "14:00"},
		{"12h pm lowercase no space", "2:00pm", "14:00"},
		{"12h am", "9:15 AM", "09:15"},
		{"noon", "12:00 PM", "12:00"},
		{"midnight", "12:00 AM", "00:00"},
		{"bare hour", "8", "08:00"},
		{"empty", "", ""},
		{"junk", "soonish", ""},
		{"out of range hour", "25:00", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeTime(tc.in))
		})
	}
}

func TestTimeToMinutes(t *testing.T) {
	assert.Equal(t, 540, TimeToMinutes("9:00"))
	assert.Equal(t, 840, TimeToMinutes("2:00 PM"))
	assert.Equal(t, 0, TimeToMinutes("12:00 AM"))
	// Lenient fallback: junk parses to midnight, not an error.
	assert.Equal(t, 0, TimeToMinutes("whenever"))
	assert.Equal(t, 0, TimeToMinutes(""))
}

func TestTo12Hour(t *testing.T) {
	assert.Equal(t, "1:00 PM", To12Hour("13:00"))
	assert.Equal(t, "12:30 PM", To12Hour("12:30"))
	assert.Equal(t, "12:05 AM", To12Hour("00:05"))
	assert.Equal(t, "9:00 AM", To12Hour("09:00"))
	assert.Equal(t, "", To12Hour("nope"))
}

func TestNormalizeDayOfWeek(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "sunday"},
		{"6", "saturday"},
		{"Mon", "monday"},
		{"MONDAY", "monday"},
		{"tue", "tuesday"},
		{" Friday ", "friday"},
		{"", ""},
		// Unrecognized input passes through unchanged.
		{"someday", "someday"},
		{"8", "8"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeDayOfWeek(tc.in), "input %q", tc.in)
	}
}

func TestDayOfWeekOf(t *testing.T) {
	assert.Equal(t, "monday", DayOfWeekOf("2025-03-10"))
	assert.Equal(t, "sunday", DayOfWeekOf("2025-03-09T00:00:00Z"))
	assert.Equal(t, "", DayOfWeekOf("not-a-date"))
}

func TestRangesOverlap(t *testing.T) {
	r := func(s, e string) models.TimeRange { return models.TimeRange{StartTime: s, EndTime: e} }

	assert.True(t, RangesOverlap(r("09:00", "12:00"), r("11:00", "13:00")))
	assert.True(t, RangesOverlap(r("11:00", "13:00"), r("09:00", "12:00")))
	assert.True(t, RangesOverlap(r("09:00", "12:00"), r("10:00", "10:30")))
	// Half-open: touching endpoints do not overlap.
	assert.False(t, RangesOverlap(r("09:00", "12:00"), r("12:00", "14:00")))
	assert.False(t, RangesOverlap(r("09:00", "10:00"), r("11:00", "12:00")))
}

func TestBuildSegments(t *testing.T) {
	slots := []models.TimeRange{
		{StartTime: "09:30", EndTime: "11:00"},
		{StartTime: "15:00", EndTime: "16:00"},
	}
	segments := BuildSegments(slots, 8, 20)
	assert.Len(t, segments, 12)

	// Hour buckets 9 and 10 overlap the first slot, 15 the second.
	want := map[int]bool{1: true, 2: true, 7: true}
	for i, got := range segments {
		assert.Equal(t, want[i], got, "bucket %d", i)
	}

	assert.Nil(t, BuildSegments(slots, 20, 8))
}
