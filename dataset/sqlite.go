package dataset

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"housing-explorer/models"
	"housing-explorer/utils"
)

// SQLiteSource reads the listing table from a SQLite snapshot file, the
// format the dataset is distributed in for offline use.
type SQLiteSource struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewSQLiteSource opens the snapshot at dbPath. The file must already
// exist; a snapshot is never created on demand.
func NewSQLiteSource(dbPath string, logger *utils.Logger) (*SQLiteSource, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%w: sqlite: snapshot %q: %v", models.ErrDataLoad, dbPath, err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite: open: %v", models.ErrDataLoad, err)
	}

	return &SQLiteSource{db: db, logger: logger}, nil
}

// Load fetches and validates all listings from the snapshot.
func (s *SQLiteSource) Load() ([]models.Listing, error) {
	rows, err := s.db.Query(`
		SELECT id, neighborhood, property_type, bedrooms, size_sqft,
		       price_monthly_aed, amenities, date_posted, lat, lng
		FROM listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite: query listings: %v", models.ErrDataLoad, err)
	}
	defer rows.Close()

	var listings []models.Listing
	row := 0
	for rows.Next() {
		row++
		var l models.Listing
		var amenities, datePosted string
		if err := rows.Scan(
			&l.ID, &l.Neighborhood, &l.PropertyType, &l.Bedrooms, &l.SizeSqft,
			&l.MonthlyRent, &amenities, &datePosted, &l.Lat, &l.Lng,
		); err != nil {
			return nil, fmt.Errorf("%w: sqlite: scan row: %v", models.ErrDataLoad, err)
		}

		l.Amenities = splitAmenities(amenities)
		l.ListedAt, err = time.Parse(dateLayout, datePosted)
		if err != nil {
			return nil, fmt.Errorf("%w: sqlite: row %d: bad date_posted: %v",
				models.ErrDataLoad, row, err)
		}

		if err := validateListing(l, row); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: sqlite: iterate rows: %v", models.ErrDataLoad, err)
	}

	s.logger.Info("[dataset] Loaded %d listings from SQLite snapshot", len(listings))
	return listings, nil
}

// Close closes the snapshot handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
