package service

import (
	"context"

	"github.com/spec-kit/venue-service/internal/persistence"
)

// PredictionService estimates near-term occupancy for a venue from the
// trailing sample window. The estimate is the current count extrapolated by
// the average recent delta, clamped to [0, capacity].
type PredictionService struct {
	cache *persistence.OccupancyCache
}

// NewPredictionService builds the service.
func NewPredictionService(cache *persistence.OccupancyCache) *PredictionService {
	return &PredictionService{cache: cache}
}

// PredictOccupancy returns the short-horizon occupancy estimate. With fewer
// than two samples there is no trend and the current count is returned.
func (s *PredictionService) PredictOccupancy(ctx context.Context, venueID int64, current, capacity int) int {
	samples, err := s.cache.RecentSamples(ctx, venueID)
	if err != nil || len(samples) < 2 {
		return clampOccupancy(current, capacity)
	}

	// Samples are newest first; the summed deltas telescope to newest-oldest.
	trend := samples[0] - samples[len(samples)-1]
	avgDelta := trend / (len(samples) - 1)

	return clampOccupancy(current+avgDelta, capacity)
}

func clampOccupancy(value, capacity int) int {
	if value < 0 {
		return 0
	}
	if capacity > 0 && value > capacity {
		return capacity
	}
	return value
}
