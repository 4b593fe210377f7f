package model

import (
	"fmt"
	"math"
	"time"
)

// PricePoint is a single daily observation.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// Usable reports whether the price can participate in any computation.
// Non-positive and non-finite prices are treated as missing for that date.
func (p PricePoint) Usable() bool {
	return p.Price > 0 && !math.IsInf(p.Price, 0) && !math.IsNaN(p.Price)
}

// PriceSeries is an ordered daily price history: strictly increasing by date,
// at most one point per date, immutable once built. The derived price arrays
// are views owned by the series; callers must not modify them.
type PriceSeries struct {
	Symbol string

	points    []PricePoint
	prices    []float64
	logPrices []float64 // NaN where the price is missing
	usable    []bool
}

// NewPriceSeries builds a series, enforcing the date-ordering invariant.
// Out-of-order or duplicate dates indicate a caller bug and are rejected.
func NewPriceSeries(symbol string, points []PricePoint) (*PriceSeries, error) {
	for i := 1; i < len(points); i++ {
		if !points[i].Date.After(points[i-1].Date) {
			return nil, fmt.Errorf("series %s: dates must be strictly increasing, got %s then %s",
				symbol,
				points[i-1].Date.Format("2006-01-02"),
				points[i].Date.Format("2006-01-02"))
		}
	}

	s := &PriceSeries{
		Symbol:    symbol,
		points:    points,
		prices:    make([]float64, len(points)),
		logPrices: make([]float64, len(points)),
		usable:    make([]bool, len(points)),
	}
	for i, p := range points {
		s.prices[i] = p.Price
		s.usable[i] = p.Usable()
		if s.usable[i] {
			s.logPrices[i] = math.Log(p.Price)
		} else {
			s.logPrices[i] = math.NaN()
		}
	}
	return s, nil
}

func (s *PriceSeries) Len() int { return len(s.points) }

func (s *PriceSeries) Date(i int) time.Time { return s.points[i].Date }

// Prices returns the linear price view.
func (s *PriceSeries) Prices() []float64 { return s.prices }

// LogPrices returns the log price view. Entries for missing prices are NaN
// and must be guarded with UsableAt.
func (s *PriceSeries) LogPrices() []float64 { return s.logPrices }

// UsableAt reports whether the price at index i participates in computations.
func (s *PriceSeries) UsableAt(i int) bool { return s.usable[i] }

// MissingCount returns the number of dates whose price is treated as missing.
func (s *PriceSeries) MissingCount() int {
	n := 0
	for _, u := range s.usable {
		if !u {
			n++
		}
	}
	return n
}
