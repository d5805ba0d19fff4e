package resolver

import (
	"context"

	"shootscout/clients/schedule"
	"shootscout/models"
)

// AvailabilityClient is the comprehensive availability-for-booking collaborator.
type AvailabilityClient interface {
	AvailabilityForBooking(ctx context.Context, target models.BookingTarget, photographerIDs []string) ([]schedule.PhotographerAvailability, error)
}

// ScheduleClient is the bulk raw-schedule collaborator.
type ScheduleClient interface {
	BulkSchedules(ctx context.Context, photographerIDs []string, fromDate, toDate string) (map[string][]models.ScheduleRecord, error)
}

// ProfileSource supplies a photographer's stored profile address. It is only
// consulted on the fallback path, when the comprehensive lookup did not deliver
// origins. Optional; a nil ProfileSource disables fallback distance computation.
type ProfileSource interface {
	ProfileAddress(ctx context.Context, photographerID string) (models.Address, error)
}
