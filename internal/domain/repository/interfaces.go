package repository

import (
	"context"
	"time"

	"RateSpread/internal/domain/models"
)

// SeriesSource retrieves named rate series from an external data service.
type SeriesSource interface {
	FetchSeries(ctx context.Context, id, label string, start, end time.Time) models.FetchOutcome
	FetchCC30(ctx context.Context, label string, start, end time.Time) models.FetchOutcome
}
