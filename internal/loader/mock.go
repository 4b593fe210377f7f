package loader

import (
	"time"

	"BandSentinel/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Points []model.PricePoint
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) LoadSeries(symbol string) (*model.PriceSeries, error) {
	points := m.Points
	if points == nil {
		points = GeneratePoints(100.0, 120)
	}
	return model.NewPriceSeries(symbol, points)
}

// GeneratePoints builds a gently drifting daily series ending today, useful
// for smoke runs without real data.
func GeneratePoints(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	start := time.Now().AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Date:  start.AddDate(0, 0, i),
			Price: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return points
}
