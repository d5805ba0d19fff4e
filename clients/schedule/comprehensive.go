package schedule

import (
	"context"

	"shootscout/models"
)

// availabilityForBookingPath is the comprehensive per-booking lookup: distance, slot,
// and booked-slot data for a candidate roster in one call.
const availabilityForBookingPath = "/photographers/availability-for-booking"

// AvailabilityForBookingRequest mirrors the comprehensive endpoint's request body.
type AvailabilityForBookingRequest struct {
	Date            string   `json:"date"`
	Time            string   `json:"time,omitempty"`
	ShootAddress    string   `json:"shoot_address"`
	ShootCity       string   `json:"shoot_city"`
	ShootState      string   `json:"shoot_state"`
	ShootZip        string   `json:"shoot_zip"`
	PhotographerIDs []string `json:"photographer_ids"`
}

// PhotographerAvailability is one roster entry of the comprehensive response. Ids
// arrive as strings or bare numbers depending on the upstream data source, and
// either origin_address or home_address may carry the origin.
type PhotographerAvailability struct {
	ID                models.FlexID        `json:"id"`
	Name              string               `json:"name,omitempty"`
	Avatar            string               `json:"avatar,omitempty"`
	Distance          *float64             `json:"distance,omitempty"`
	OriginAddress     *models.Address      `json:"origin_address,omitempty"`
	HomeAddress       *models.Address      `json:"home_address,omitempty"`
	DistanceFrom      string               `json:"distance_from,omitempty"`
	PreviousShootID   models.FlexID        `json:"previous_shoot_id,omitempty"`
	AvailabilitySlots []models.TimeRange   `json:"availability_slots,omitempty"`
	BookedSlots       []models.BookedRange `json:"booked_slots,omitempty"`
	NetAvailableSlots []models.TimeRange   `json:"net_available_slots,omitempty"`
	IsAvailableAtTime *bool                `json:"is_available_at_time,omitempty"`
	HasAvailability   *bool                `json:"has_availability,omitempty"`
	ShootsCountToday  int                  `json:"shoots_count_today,omitempty"`
}

// Origin returns whichever origin address the record carries, preferring the explicit
// origin_address over the profile home_address.
func (p PhotographerAvailability) Origin() models.Address {
	if p.OriginAddress != nil && !p.OriginAddress.IsZero() {
		return *p.OriginAddress
	}
	if p.HomeAddress != nil {
		return *p.HomeAddress
	}
	return models.Address{}
}

// AvailabilityForBooking runs the comprehensive lookup for a booking target and
// candidate roster.
func (c *Client) AvailabilityForBooking(ctx context.Context, target models.BookingTarget, photographerIDs []string) ([]PhotographerAvailability, error) {
	req := AvailabilityForBookingRequest{
		Date:            target.Date,
		Time:            target.Time,
		ShootAddress:    target.Address.Address,
		ShootCity:       target.City,
		ShootState:      target.State,
		ShootZip:        target.Zip,
		PhotographerIDs: photographerIDs,
	}
	var out []PhotographerAvailability
	if err := c.postJSON(ctx, availabilityForBookingPath, req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
