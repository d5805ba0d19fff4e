package distance

import (
	"context"
	"fmt"
	"sync"

	"shootscout/models"
)

// Geocoder turns an address into a coordinate pair. A nil point with a nil error
// means the address could not be located; that is not a failure.
type Geocoder interface {
	Geocode(ctx context.Context, addr models.Address) (*models.GeoPoint, error)
}

// Resolver computes travel distances from photographer origins to one booking
// address. It is scoped to a single resolution cycle so the booking address is
// geocoded at most once and reused across the whole roster.
type Resolver struct {
	geo     Geocoder
	booking models.Address
	key     string

	once    sync.Once
	target  *models.GeoPoint
	onceErr error
}

// NewResolver builds a resolver for one booking address.
func NewResolver(geo Geocoder, booking models.Address) *Resolver {
	return &Resolver{geo: geo, booking: booking, key: booking.Key()}
}

// HasBookingAddress reports whether the booking carries enough address data to
// resolve distances at all.
func (r *Resolver) HasBookingAddress() bool {
	return r.key != ""
}

// Resolve returns the distance in miles from origin to the booking address, or nil
// when it cannot be determined. The address-key equality check runs before any
// geocoding: identical addresses resolve to zero with no network call, and partial
// address data on either side short-circuits to unknown.
func (r *Resolver) Resolve(ctx context.Context, origin models.Address) (*float64, error) {
	originKey := origin.Key()
	if r.key == "" || originKey == "" {
		return nil, nil
	}
	if originKey == r.key {
		zero := 0.0
		return &zero, nil
	}

	target, err := r.bookingPoint(ctx)
	if err != nil {
		return nil, fmt.Errorf("geocode booking address: %w", err)
	}
	if target == nil {
		return nil, nil
	}

	point, err := r.geo.Geocode(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("geocode origin %q: %w", origin.DisplayLine(), err)
	}
	if point == nil {
		return nil, nil
	}

	miles := HaversineMiles(target.Lat, target.Lon, point.Lat, point.Lon)
	return &miles, nil
}

// bookingPoint geocodes the booking address once per cycle.
func (r *Resolver) bookingPoint(ctx context.Context) (*models.GeoPoint, error) {
	r.once.Do(func() {
		r.target, r.onceErr = r.geo.Geocode(ctx, r.booking)
	})
	return r.target, r.onceErr
}
