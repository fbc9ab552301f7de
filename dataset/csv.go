package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"housing-explorer/models"
	"housing-explorer/utils"
)

// dateLayout is the listing-date format used by the CSV and SQLite snapshots.
const dateLayout = "2006-01-02"

// csvColumns is the required header, in order.
var csvColumns = []string{
	"neighborhood", "property_type", "bedrooms", "size_sqft",
	"price_monthly_aed", "amenities", "date_posted", "lat", "lng",
}

// CSVSource reads the listing table from a CSV snapshot on disk.
type CSVSource struct {
	path   string
	logger *utils.Logger
}

// NewCSVSource creates a CSVSource for the file at path. The file is not
// opened until Load.
func NewCSVSource(path string, logger *utils.Logger) *CSVSource {
	return &CSVSource{path: path, logger: logger}
}

// Load reads and validates every row of the CSV file.
func (s *CSVSource) Load() ([]models.Listing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: csv: open %q: %v", models.ErrDataLoad, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvColumns)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: read header: %v", models.ErrDataLoad, err)
	}
	for i, col := range csvColumns {
		if header[i] != col {
			return nil, fmt.Errorf("%w: csv: column %d is %q, want %q",
				models.ErrDataLoad, i, header[i], col)
		}
	}

	var listings []models.Listing
	for row := 1; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: row %d: %v", models.ErrDataLoad, row, err)
		}

		l, err := parseCSVRow(record, row)
		if err != nil {
			return nil, err
		}
		if err := validateListing(l, row); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}

	s.logger.Info("[dataset] Loaded %d listings from %s", len(listings), s.path)
	return listings, nil
}

// Close is a no-op; the file handle only lives for the duration of Load.
func (s *CSVSource) Close() error { return nil }

func parseCSVRow(record []string, row int) (models.Listing, error) {
	fail := func(col string, err error) (models.Listing, error) {
		return models.Listing{}, fmt.Errorf("%w: csv: row %d: bad %s: %v",
			models.ErrDataLoad, row, col, err)
	}

	bedrooms, err := strconv.Atoi(record[2])
	if err != nil {
		return fail("bedrooms", err)
	}
	sizeSqft, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return fail("size_sqft", err)
	}
	rent, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return fail("price_monthly_aed", err)
	}
	listedAt, err := time.Parse(dateLayout, record[6])
	if err != nil {
		return fail("date_posted", err)
	}
	lat, err := strconv.ParseFloat(record[7], 64)
	if err != nil {
		return fail("lat", err)
	}
	lng, err := strconv.ParseFloat(record[8], 64)
	if err != nil {
		return fail("lng", err)
	}

	return models.Listing{
		ID:           int64(row),
		Neighborhood: record[0],
		PropertyType: record[1],
		Bedrooms:     bedrooms,
		SizeSqft:     sizeSqft,
		MonthlyRent:  rent,
		Amenities:    splitAmenities(record[5]),
		ListedAt:     listedAt,
		Lat:          lat,
		Lng:          lng,
	}, nil
}
