package schedule

import (
	"context"

	"shootscout/models"
)

// bulkSchedulesPath returns raw schedule records per photographer over a date range.
const bulkSchedulesPath = "/photographers/schedules"

// BulkSchedulesRequest mirrors the bulk raw-schedule endpoint's request body.
type BulkSchedulesRequest struct {
	PhotographerIDs []string `json:"photographer_ids"`
	FromDate        string   `json:"from_date"`
	ToDate          string   `json:"to_date"`
}

// BulkSchedules fetches raw schedule records keyed by photographer id. Response keys
// are canonicalized, since the upstream source is inconsistent about emitting "7"
// versus 7-as-a-number for the same photographer.
func (c *Client) BulkSchedules(ctx context.Context, photographerIDs []string, fromDate, toDate string) (map[string][]models.ScheduleRecord, error) {
	req := BulkSchedulesRequest{
		PhotographerIDs: photographerIDs,
		FromDate:        fromDate,
		ToDate:          toDate,
	}
	var raw map[string][]models.ScheduleRecord
	if err := c.postJSON(ctx, bulkSchedulesPath, req, &raw); err != nil {
		return nil, err
	}

	out := make(map[string][]models.ScheduleRecord, len(raw))
	for key, records := range raw {
		out[models.CanonicalID(key)] = records
	}
	return out, nil
}
