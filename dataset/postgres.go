package dataset

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"housing-explorer/models"
	"housing-explorer/utils"
)

// PostgresSource reads the listing table from PostgreSQL. The table is
// maintained by an external ingestion job; this side only ever selects.
type PostgresSource struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresSource opens a connection to PostgreSQL and verifies it with
// a retried ping before returning a ready-to-use source.
func NewPostgresSource(dsn string, retry *utils.RetryConfig, logger *utils.Logger) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: open: %v", models.ErrDataLoad, err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: postgres: %v", models.ErrDataLoad, err)
	}

	return &PostgresSource{db: db, logger: logger}, nil
}

// Load fetches and validates all stored listings, in insertion order.
func (s *PostgresSource) Load() ([]models.Listing, error) {
	rows, err := s.db.Query(`
		SELECT id, neighborhood, property_type, bedrooms, size_sqft,
		       price_monthly_aed, amenities, date_posted, lat, lng
		FROM listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: query listings: %v", models.ErrDataLoad, err)
	}
	defer rows.Close()

	var listings []models.Listing
	row := 0
	for rows.Next() {
		row++
		var l models.Listing
		if err := rows.Scan(
			&l.ID, &l.Neighborhood, &l.PropertyType, &l.Bedrooms, &l.SizeSqft,
			&l.MonthlyRent, pq.Array(&l.Amenities), &l.ListedAt, &l.Lat, &l.Lng,
		); err != nil {
			return nil, fmt.Errorf("%w: postgres: scan row: %v", models.ErrDataLoad, err)
		}
		if err := validateListing(l, row); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: postgres: iterate rows: %v", models.ErrDataLoad, err)
	}

	s.logger.Info("[dataset] Loaded %d listings from PostgreSQL", len(listings))
	return listings, nil
}

// Close closes the database connection.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
