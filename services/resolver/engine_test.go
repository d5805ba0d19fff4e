package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shootscout/clients/schedule"
	"shootscout/models"
)

type fakeAvailability struct {
	mu      sync.Mutex
	calls   int
	gate    chan struct{} // when set, the first call blocks until it is closed
	err     error
	records []schedule.PhotographerAvailability
	lastReq models.BookingTarget
}

func (f *fakeAvailability) AvailabilityForBooking(ctx context.Context, target models.BookingTarget, ids []string) ([]schedule.PhotographerAvailability, error) {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	gate := f.gate
	f.lastReq = target
	f.mu.Unlock()

	if gate != nil && first {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeSchedules struct {
	mu      sync.Mutex
	calls   int
	err     error
	records map[string][]models.ScheduleRecord
}

func (f *fakeSchedules) BulkSchedules(ctx context.Context, ids []string, from, to string) (map[string][]models.ScheduleRecord, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type countingGeocoder struct {
	mu     sync.Mutex
	calls  int
	points map[string]*models.GeoPoint
}

func (f *countingGeocoder) Geocode(_ context.Context, addr models.Address) (*models.GeoPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.points[addr.Key()], nil
}

func (f *countingGeocoder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeProfiles struct {
	addresses map[string]models.Address
}

func (f *fakeProfiles) ProfileAddress(_ context.Context, id string) (models.Address, error) {
	addr, ok := f.addresses[id]
	if !ok {
		return models.Address{}, errors.New("no profile")
	}
	return addr, nil
}

var (
	bookingAddr = models.Address{Address: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"}
	peoriaAddr  = models.Address{Address: "456 Oak Ave", City: "Peoria", State: "IL", Zip: "61602"}

	roster = []models.RosterEntry{
		{ID: "1", Name: "Ada Hale"},
		{ID: "2", Name: "Ben Frome"},
	}
)

func monday(timeOfDay string) models.BookingTarget {
	return models.BookingTarget{Address: bookingAddr, Date: "2025-03-10", Time: timeOfDay}
}

func boolPtr(b bool) *bool { return &b }

func waitSettled(t *testing.T, cycle *Cycle) {
	t.Helper()
	select {
	case <-cycle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("cycle did not settle")
	}
}

func comprehensiveRecords() []schedule.PhotographerAvailability {
	return []schedule.PhotographerAvailability{
		{
			ID:                "1",
			OriginAddress:     &models.Address{Address: "123 MAIN ST.", City: "Springfield", State: "IL", Zip: "62704"},
			AvailabilitySlots: []models.TimeRange{{StartTime: "09:00", EndTime: "17:00"}},
			NetAvailableSlots: []models.TimeRange{{StartTime: "09:00", EndTime: "17:00"}},
			IsAvailableAtTime: boolPtr(true),
			ShootsCountToday:  1,
		},
		{
			ID:                "2",
			HomeAddress:       &peoriaAddr,
			AvailabilitySlots: []models.TimeRange{{StartTime: "13:00", EndTime: "16:00"}},
			BookedSlots:       []models.BookedRange{{TimeRange: models.TimeRange{StartTime: "14:00", EndTime: "14:30"}, ShootID: "s-9"}},
			IsAvailableAtTime: boolPtr(true),
		},
	}
}

func bulkRecords() map[string][]models.ScheduleRecord {
	return map[string][]models.ScheduleRecord{
		"1": {{Date: "2025-03-10", StartTime: "09:00", EndTime: "17:00"}},
		"2": {{DayOfWeek: "monday", StartTime: "13:00", EndTime: "16:00"}},
	}
}

func TestResolve_PrimaryPath(t *testing.T) {
	avail := &fakeAvailability{records: comprehensiveRecords()}
	sched := &fakeSchedules{records: bulkRecords()}
	geo := &countingGeocoder{points: map[string]*models.GeoPoint{
		bookingAddr.Key(): {Lat: 39.7990, Lon: -89.6440},
		peoriaAddr.Key():  {Lat: 40.6936, Lon: -89.5890},
	}}
	engine := New(avail, sched, nil, geo)

	cycle := engine.Resolve(monday("02:00 PM"), roster)
	waitSettled(t, cycle)

	snap := engine.Snapshot()
	require.Equal(t, models.ResolutionSettled, snap.State)
	require.Len(t, snap.Photographers, 2)

	p1, p2 := snap.Photographers[0], snap.Photographers[1]

	// P1's origin is the shoot address: distance zero through the key shortcut.
	require.NotNil(t, p1.Distance)
	assert.Equal(t, 0.0, *p1.Distance)

	// Only the booking address and P2's origin hit the geocoder; P1's shortcut
	// made no network call.
	assert.Equal(t, 2, geo.count())
	require.NotNil(t, p2.Distance)
	assert.InDelta(t, 62, *p2.Distance, 10)
	assert.Equal(t, models.DistanceFromHome, p2.DistanceFrom)

	// The bulk recompute is authoritative: P2's booked shoot is netted out locally.
	assert.Equal(t, []models.TimeRange{
		{StartTime: "13:00", EndTime: "14:00"},
		{StartTime: "14:30", EndTime: "16:00"},
	}, p2.NetAvailableSlots)

	// 2:00 PM sits on the booked slot's start, so the server's optimistic flag is
	// overridden by the local computation.
	require.NotNil(t, p2.IsAvailableAtTime)
	assert.False(t, *p2.IsAvailableAtTime)
	require.NotNil(t, p1.IsAvailableAtTime)
	assert.True(t, *p1.IsAvailableAtTime)

	// The availability map answers under any id form.
	info, ok := snap.Availability.Get("2")
	require.True(t, ok)
	assert.True(t, info.IsAvailable)
	_, ok = snap.Availability.Get(2)
	assert.True(t, ok)
	_, ok = snap.Availability.Get(2.0)
	assert.True(t, ok)
}

func TestResolve_LastCycleWins(t *testing.T) {
	gate := make(chan struct{})
	avail := &fakeAvailability{records: comprehensiveRecords(), gate: gate}
	sched := &fakeSchedules{records: bulkRecords()}
	geo := &countingGeocoder{}
	engine := New(avail, sched, nil, geo)

	// Cycle 1 blocks inside the comprehensive lookup.
	first := engine.Resolve(monday(""), roster)

	// Cycle 2 supersedes it with a different date and a smaller roster.
	second := engine.Resolve(models.BookingTarget{Address: bookingAddr, Date: "2025-03-11"}, roster[:1])
	waitSettled(t, second)

	// Release cycle 1 late; its results must be discarded.
	close(gate)
	waitSettled(t, first)

	snap := engine.Snapshot()
	assert.Equal(t, models.ResolutionSettled, snap.State)
	require.Len(t, snap.Photographers, 1)
	assert.Equal(t, "1", snap.Photographers[0].ID)
	assert.Equal(t, "2025-03-11", avail.lastReq.Date)
}

func TestResolve_FallbackPath(t *testing.T) {
	avail := &fakeAvailability{err: errors.New("503 from upstream")}
	sched := &fakeSchedules{records: bulkRecords()}
	geo := &countingGeocoder{points: map[string]*models.GeoPoint{
		bookingAddr.Key(): {Lat: 39.7990, Lon: -89.6440},
		peoriaAddr.Key():  {Lat: 40.6936, Lon: -89.5890},
	}}
	profiles := &fakeProfiles{addresses: map[string]models.Address{
		"1": bookingAddr,
		"2": peoriaAddr,
	}}
	engine := New(avail, sched, profiles, geo)

	cycle := engine.Resolve(monday("10:00"), roster)
	waitSettled(t, cycle)

	snap := engine.Snapshot()
	require.Equal(t, models.ResolutionSettled, snap.State)
	assert.Empty(t, snap.Notice)

	p1, p2 := snap.Photographers[0], snap.Photographers[1]

	// Availability merged locally from raw schedules, with no booked data to net.
	assert.Equal(t, []models.TimeRange{{StartTime: "09:00", EndTime: "17:00"}}, p1.NetAvailableSlots)
	assert.Equal(t, []models.TimeRange{{StartTime: "13:00", EndTime: "16:00"}}, p2.NetAvailableSlots)
	require.NotNil(t, p1.IsAvailableAtTime)
	assert.True(t, *p1.IsAvailableAtTime)
	require.NotNil(t, p2.IsAvailableAtTime)
	assert.False(t, *p2.IsAvailableAtTime)

	// Profile-address distances as the secondary source.
	require.NotNil(t, p1.Distance)
	assert.Equal(t, 0.0, *p1.Distance)
	require.NotNil(t, p2.Distance)
	assert.InDelta(t, 62, *p2.Distance, 10)
}

func TestResolve_FallbackFailureShowsRosterUnenriched(t *testing.T) {
	avail := &fakeAvailability{err: errors.New("down")}
	sched := &fakeSchedules{err: errors.New("also down")}
	engine := New(avail, sched, nil, &countingGeocoder{})

	cycle := engine.Resolve(monday("10:00"), roster)
	waitSettled(t, cycle)

	snap := engine.Snapshot()
	assert.Equal(t, models.ResolutionSettled, snap.State)
	assert.NotEmpty(t, snap.Notice)
	require.Len(t, snap.Photographers, 2)
	for _, p := range snap.Photographers {
		assert.Nil(t, p.Distance)
		assert.Empty(t, p.NetAvailableSlots)
	}
}

func TestResolve_NoDateSkipsEnrichment(t *testing.T) {
	avail := &fakeAvailability{records: comprehensiveRecords()}
	sched := &fakeSchedules{records: bulkRecords()}
	engine := New(avail, sched, nil, &countingGeocoder{})

	cycle := engine.Resolve(models.BookingTarget{Address: bookingAddr}, roster)
	waitSettled(t, cycle)

	snap := engine.Snapshot()
	assert.Equal(t, models.ResolutionSettled, snap.State)
	assert.Equal(t, 0, avail.calls)
	assert.Equal(t, 0, sched.calls)
	require.Len(t, snap.Photographers, 2)
	assert.Nil(t, snap.Photographers[0].Distance)
}

func TestResolve_NoAddressSkipsDistanceOnly(t *testing.T) {
	avail := &fakeAvailability{records: comprehensiveRecords()}
	sched := &fakeSchedules{records: bulkRecords()}
	geo := &countingGeocoder{}
	engine := New(avail, sched, nil, geo)

	cycle := engine.Resolve(models.BookingTarget{Date: "2025-03-10"}, roster)
	waitSettled(t, cycle)

	snap := engine.Snapshot()
	assert.Equal(t, models.ResolutionSettled, snap.State)
	assert.Equal(t, 0, geo.count())
	for _, p := range snap.Photographers {
		assert.Nil(t, p.Distance)
	}
	// Availability still resolves.
	info, ok := snap.Availability.Get("1")
	require.True(t, ok)
	assert.True(t, info.IsAvailable)
}

func TestCancelSuppressesCommits(t *testing.T) {
	gate := make(chan struct{})
	avail := &fakeAvailability{records: comprehensiveRecords(), gate: gate}
	engine := New(avail, &fakeSchedules{records: bulkRecords()}, nil, &countingGeocoder{})

	cycle := engine.Resolve(monday(""), roster)
	engine.Cancel()
	close(gate)
	waitSettled(t, cycle)

	// The cancelled cycle never settles the snapshot.
	snap := engine.Snapshot()
	assert.Equal(t, models.ResolutionLoadingAvailability, snap.State)
}
