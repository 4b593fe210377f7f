package loader

import "BandSentinel/internal/model"

// Source provides the ordered daily price series for one instrument. All
// network and file access happens here, before the core runs; the core
// itself never performs I/O.
type Source interface {
	LoadSeries(symbol string) (*model.PriceSeries, error)
	Name() string
}
