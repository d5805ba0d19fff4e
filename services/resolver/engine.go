package resolver

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shootscout/clients/schedule"
	"shootscout/models"
	"shootscout/services/availability"
	"shootscout/services/distance"
	"shootscout/utils"
)

// Engine resolves a photographer roster against a booking target: travel distance,
// net working-hours availability, and ranking input, committed progressively to a
// shared snapshot. Each call to Resolve starts a new cycle and supersedes the one
// before it; a superseded cycle's late results are discarded at the commit point, so
// the snapshot only ever reflects the newest inputs.
type Engine struct {
	Availability AvailabilityClient
	Schedules    ScheduleClient
	Profiles     ProfileSource
	Geo          distance.Geocoder

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	snap       models.ResolutionSnapshot
}

// Cycle is a handle on one resolution run.
type Cycle struct {
	ID   string
	gen  uint64
	done chan struct{}
}

// Done is closed when the cycle has settled or been superseded.
func (c *Cycle) Done() <-chan struct{} { return c.done }

// New builds an engine around the external collaborators.
func New(availabilityClient AvailabilityClient, scheduleClient ScheduleClient, profiles ProfileSource, geo distance.Geocoder) *Engine {
	return &Engine{
		Availability: availabilityClient,
		Schedules:    scheduleClient,
		Profiles:     profiles,
		Geo:          geo,
		snap:         models.ResolutionSnapshot{State: models.ResolutionSettled},
	}
}

// Resolve starts a new resolution cycle for the target and roster. Any in-flight
// cycle is cancelled immediately; its outstanding requests are aborted and its
// remaining commits dropped.
func (e *Engine) Resolve(target models.BookingTarget, roster []models.RosterEntry) *Cycle {
	ctx, cancel := context.WithCancel(context.Background())

	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
	}
	e.cancel = cancel
	e.generation++
	gen := e.generation

	photographers := make([]models.Photographer, 0, len(roster))
	for _, entry := range roster {
		photographers = append(photographers, models.Photographer{
			ID:     models.CanonicalID(entry.ID),
			Name:   entry.Name,
			Avatar: entry.Avatar,
		})
	}
	// The snapshot gets its own copy; run reads the roster outside the lock.
	initial := make([]models.Photographer, len(photographers))
	copy(initial, photographers)
	e.snap = models.ResolutionSnapshot{
		State:         models.ResolutionLoadingAvailability,
		Photographers: initial,
		Availability:  make(models.AvailabilityMap),
	}
	e.mu.Unlock()

	cycle := &Cycle{ID: uuid.New().String(), gen: gen, done: make(chan struct{})}
	go e.run(ctx, cycle, target, photographers)
	return cycle
}

// Cancel aborts the in-flight cycle without starting a new one, e.g. when the
// consuming view goes away.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.generation++
}

// Snapshot returns a copy of the last-committed state.
func (e *Engine) Snapshot() models.ResolutionSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.Clone()
}

// commit applies mutate to the shared snapshot iff the cycle is still current.
// This is the only write path; the generation check is what makes "last cycle
// wins" hold without any further coordination.
func (e *Engine) commit(gen uint64, mutate func(*models.ResolutionSnapshot)) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.generation {
		return false // stale cycle, discard silently
	}
	mutate(&e.snap)
	return true
}

func (e *Engine) run(ctx context.Context, cycle *Cycle, target models.BookingTarget, roster []models.Photographer) {
	defer close(cycle.done)
	logger := utils.GetLogger().With(zap.String("cycle", cycle.ID))

	// No date selected: nothing to resolve, show the roster unenriched.
	if target.Date == "" {
		e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
			s.State = models.ResolutionSettled
		})
		return
	}

	ids := make([]string, 0, len(roster))
	for _, p := range roster {
		ids = append(ids, p.ID)
	}

	records, err := e.Availability.AvailabilityForBooking(ctx, target, ids)
	if err != nil {
		if ctx.Err() != nil {
			return // superseded or cancelled mid-flight
		}
		logger.Warn("comprehensive lookup failed, taking fallback path",
			zap.String("code", CodePrimaryLookupFailure), zap.Error(err))
		e.fallback(ctx, cycle, target, ids, logger)
		return
	}

	byID := make(map[string]schedule.PhotographerAvailability, len(records))
	for _, rec := range records {
		byID[rec.ID.String()] = rec
	}

	// Enriching: commit everything the comprehensive lookup delivered except
	// distance, which is back-filled per photographer below.
	e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
		for i, p := range s.Photographers {
			rec, ok := byID[p.ID]
			if !ok {
				continue
			}
			p.Origin = rec.Origin()
			p.DistanceFrom = rec.DistanceFrom
			p.AvailabilitySlots = rec.AvailabilitySlots
			p.BookedSlots = rec.BookedSlots
			p.NetAvailableSlots = rec.NetAvailableSlots
			p.IsAvailableAtTime = rec.IsAvailableAtTime
			p.ShootsCountToday = rec.ShootsCountToday
			s.Photographers[i] = p

			// Provisional summary from server data; the bulk recompute below is
			// authoritative and overwrites it.
			s.Availability.Set(p.ID, availability.Summarize(rec.NetAvailableSlots))
		}
	})

	var wg sync.WaitGroup
	e.resolveDistances(ctx, cycle, target, roster, byID, &wg, logger)

	e.applyBulkAvailability(ctx, cycle, target, ids, byID, logger)

	e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
		s.State = models.ResolutionLoadingDistance
	})

	wg.Wait()
	e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
		s.State = models.ResolutionSettled
	})
}

// resolveDistances back-fills each photographer's distance concurrently. Every
// failure is isolated to its photographer; the distance simply stays unknown.
func (e *Engine) resolveDistances(ctx context.Context, cycle *Cycle, target models.BookingTarget, roster []models.Photographer, byID map[string]schedule.PhotographerAvailability, wg *sync.WaitGroup, logger *zap.Logger) {
	resolver := distance.NewResolver(e.Geo, target.Address)
	if !resolver.HasBookingAddress() {
		return
	}

	for _, p := range roster {
		rec, ok := byID[p.ID]
		if !ok {
			continue
		}
		origin := rec.Origin()
		if origin.IsZero() {
			continue
		}
		distanceFrom := rec.DistanceFrom
		if distanceFrom == "" {
			distanceFrom = models.DistanceFromHome
		}

		wg.Add(1)
		go func(id string, origin models.Address, distanceFrom string) {
			defer wg.Done()
			miles, err := resolver.Resolve(ctx, origin)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("distance resolution failed", zap.String("photographer", id), zap.Error(err))
				}
				return
			}
			if miles == nil {
				return
			}
			e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
				for i, sp := range s.Photographers {
					if sp.ID == id {
						sp.Distance = miles
						sp.DistanceFrom = distanceFrom
						s.Photographers[i] = sp
						break
					}
				}
			})
		}(p.ID, origin, distanceFrom)
	}
}

// applyBulkAvailability recomputes net availability from raw bulk schedules. The
// local merge is the single source of truth for both the slot display and the
// available-at-time flag; server values only stand until this pass lands. A bulk
// lookup failure leaves the server-derived values in place.
func (e *Engine) applyBulkAvailability(ctx context.Context, cycle *Cycle, target models.BookingTarget, ids []string, byID map[string]schedule.PhotographerAvailability, logger *zap.Logger) {
	recordsByID, err := e.Schedules.BulkSchedules(ctx, ids, target.Date, target.Date)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("bulk schedule lookup failed, keeping server-derived availability", zap.Error(err))
		}
		return
	}

	e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
		for i, p := range s.Photographers {
			records, ok := recordsByID[p.ID]
			if !ok {
				continue
			}
			var booked []models.BookedRange
			if rec, ok := byID[p.ID]; ok {
				booked = rec.BookedSlots
			}
			res := availability.MergeDay(availability.DayInput{
				Records: records,
				Booked:  booked,
				Date:    target.Date,
			})
			p.AvailabilitySlots = res.Available
			p.NetAvailableSlots = res.Net
			if target.Time != "" {
				at := availability.AvailableAt(res.Net, target.Time)
				p.IsAvailableAtTime = &at
			}
			s.Photographers[i] = p
			s.Availability.Set(p.ID, res.Info)
		}
	})
}

// fallback runs when the comprehensive lookup fails: raw bulk schedules for
// availability, and the stored profile address as a secondary distance source.
func (e *Engine) fallback(ctx context.Context, cycle *Cycle, target models.BookingTarget, ids []string, logger *zap.Logger) {
	var wg sync.WaitGroup
	e.fallbackDistances(ctx, cycle, target, ids, &wg, logger)

	recordsByID, err := e.Schedules.BulkSchedules(ctx, ids, target.Date, target.Date)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Error("fallback schedule lookup failed, roster shown unenriched",
			zap.String("code", CodeFallbackFailure), zap.Error(err))
		e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
			s.Notice = "Photographer availability could not be loaded."
		})
	} else {
		e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
			for i, p := range s.Photographers {
				records, ok := recordsByID[p.ID]
				if !ok {
					continue
				}
				// Booked-slot data is only carried by the comprehensive endpoint,
				// so the fallback nets nothing out.
				res := availability.MergeDay(availability.DayInput{Records: records, Date: target.Date})
				p.AvailabilitySlots = res.Available
				p.NetAvailableSlots = res.Net
				if target.Time != "" {
					at := availability.AvailableAt(res.Net, target.Time)
					p.IsAvailableAtTime = &at
				}
				s.Photographers[i] = p
				s.Availability.Set(p.ID, res.Info)
			}
		})
	}

	e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
		s.State = models.ResolutionLoadingDistance
	})

	wg.Wait()
	e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
		s.State = models.ResolutionSettled
	})
}

// fallbackDistances computes distances from stored profile addresses when a profile
// source is wired.
func (e *Engine) fallbackDistances(ctx context.Context, cycle *Cycle, target models.BookingTarget, ids []string, wg *sync.WaitGroup, logger *zap.Logger) {
	resolver := distance.NewResolver(e.Geo, target.Address)
	if e.Profiles == nil || !resolver.HasBookingAddress() {
		return
	}

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			addr, err := e.Profiles.ProfileAddress(ctx, id)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("profile address lookup failed", zap.String("photographer", id), zap.Error(err))
				}
				return
			}
			miles, err := resolver.Resolve(ctx, addr)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("fallback distance resolution failed", zap.String("photographer", id), zap.Error(err))
				}
				return
			}
			if miles == nil {
				return
			}
			e.commit(cycle.gen, func(s *models.ResolutionSnapshot) {
				for i, sp := range s.Photographers {
					if sp.ID == id {
						sp.Distance = miles
						sp.DistanceFrom = models.DistanceFromHome
						sp.Origin = addr
						s.Photographers[i] = sp
						break
					}
				}
			})
		}(id)
	}
}
