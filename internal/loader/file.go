package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"BandSentinel/internal/model"
)

const dateLayout = "2006-01-02"

// FileSource reads a price series from a local JSON or CSV file. The input
// contract is the external collaborator's: ISO-8601 dates, ascending,
// already deduplicated. Ordering violations surface as series-construction
// errors and abort the run.
type FileSource struct {
	Path   string
	Format string // "json", "csv", or "" to infer from the extension
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path, format string) *FileSource {
	return &FileSource{Path: path, Format: format}
}

func (f *FileSource) Name() string { return "file:" + f.Path }

// LoadSeries parses the file and builds the immutable series.
func (f *FileSource) LoadSeries(symbol string) (*model.PriceSeries, error) {
	format := f.Format
	if format == "" {
		switch strings.ToLower(filepath.Ext(f.Path)) {
		case ".csv":
			format = "csv"
		default:
			format = "json"
		}
	}

	var (
		points []model.PricePoint
		err    error
	)
	switch format {
	case "json":
		points, err = readJSON(f.Path)
	case "csv":
		points, err = readCSV(f.Path)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return model.NewPriceSeries(symbol, points)
}

type jsonPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

func readJSON(path string) ([]model.PricePoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	var raw []jsonPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse input json: %w", err)
	}

	points := make([]model.PricePoint, len(raw))
	for i, p := range raw {
		date, err := time.Parse(dateLayout, p.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q at entry %d: %w", p.Date, i, err)
		}
		points[i] = model.PricePoint{Date: date, Price: p.Price}
	}
	return points, nil
}

func readCSV(path string) ([]model.PricePoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse input csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Optional "date,price" header
	start := 0
	if strings.EqualFold(strings.TrimSpace(rows[0][0]), "date") {
		start = 1
	}

	points := make([]model.PricePoint, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			return nil, fmt.Errorf("csv row %d: expected 2 columns, got %d", i+1, len(row))
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("csv row %d: parse date %q: %w", i+1, row[0], err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: parse price %q: %w", i+1, row[1], err)
		}
		points = append(points, model.PricePoint{Date: date, Price: price})
	}
	return points, nil
}
