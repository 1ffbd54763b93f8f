package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/venue-service/internal/persistence"
)

func TestPredictOccupancy_NoSamplesReturnsCurrent(t *testing.T) {
	svc := NewPredictionService(persistence.NewOccupancyCache(nil))

	assert.Equal(t, 30, svc.PredictOccupancy(context.Background(), 1, 30, 100))
}

func TestPredictOccupancy_ClampsToBounds(t *testing.T) {
	svc := NewPredictionService(persistence.NewOccupancyCache(nil))
	ctx := context.Background()

	assert.Equal(t, 0, svc.PredictOccupancy(ctx, 1, -5, 100))
	assert.Equal(t, 100, svc.PredictOccupancy(ctx, 1, 150, 100))
	// Zero capacity means unknown; no upper clamp applies.
	assert.Equal(t, 150, svc.PredictOccupancy(ctx, 1, 150, 0))
}

func TestClampOccupancy(t *testing.T) {
	assert.Equal(t, 0, clampOccupancy(-1, 50))
	assert.Equal(t, 25, clampOccupancy(25, 50))
	assert.Equal(t, 50, clampOccupancy(80, 50))
	assert.Equal(t, 80, clampOccupancy(80, 0))
}
