package dataset

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"housing-explorer/models"
	"housing-explorer/utils"
)

func writeTempSnapshot(t *testing.T, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.db")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE listings (
			id                INTEGER PRIMARY KEY,
			neighborhood      TEXT NOT NULL,
			property_type     TEXT NOT NULL,
			bedrooms          INTEGER NOT NULL,
			size_sqft         REAL NOT NULL,
			price_monthly_aed REAL NOT NULL,
			amenities         TEXT NOT NULL DEFAULT '',
			date_posted       TEXT NOT NULL,
			lat               REAL NOT NULL,
			lng               REAL NOT NULL
		)
	`)
	if err != nil {
		t.Fatal(err)
	}

	for _, row := range rows {
		_, err := db.Exec(`
			INSERT INTO listings
			(neighborhood, property_type, bedrooms, size_sqft, price_monthly_aed, amenities, date_posted, lat, lng)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, row...)
		if err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func TestSQLiteSourceLoad(t *testing.T) {
	path := writeTempSnapshot(t, [][]any{
		{"Dubai Marina", "Apartment", 1, 780.0, 7500.0, "pool;gym", "2023-04-12", 25.08, 55.14},
		{"Deira", "Apartment", 2, 1000.0, 5100.0, "", "2023-02-27", 25.27, 55.31},
	})

	src, err := NewSQLiteSource(path, utils.NewLogger())
	if err != nil {
		t.Fatalf("NewSQLiteSource failed: %v", err)
	}
	defer src.Close()

	listings, err := src.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(listings) != 2 {
		t.Fatalf("got %d listings, want 2", len(listings))
	}
	if listings[0].Neighborhood != "Dubai Marina" {
		t.Errorf("neighborhood: got %q", listings[0].Neighborhood)
	}
	if len(listings[0].Amenities) != 2 {
		t.Errorf("amenities: got %v, want [pool gym]", listings[0].Amenities)
	}
	if listings[1].ListedAt.Format("2006-01-02") != "2023-02-27" {
		t.Errorf("date: got %v", listings[1].ListedAt)
	}
}

func TestSQLiteSourceMissingSnapshot(t *testing.T) {
	_, err := NewSQLiteSource(filepath.Join(t.TempDir(), "nope.db"), utils.NewLogger())
	if !errors.Is(err, models.ErrDataLoad) {
		t.Errorf("expected ErrDataLoad for missing snapshot, got %v", err)
	}
}

func TestSQLiteSourceMalformedRow(t *testing.T) {
	path := writeTempSnapshot(t, [][]any{
		{"Dubai Marina", "Apartment", 1, 780.0, -7500.0, "", "2023-04-12", 25.08, 55.14},
	})

	src, err := NewSQLiteSource(path, utils.NewLogger())
	if err != nil {
		t.Fatalf("NewSQLiteSource failed: %v", err)
	}
	defer src.Close()

	if _, err := src.Load(); !errors.Is(err, models.ErrDataLoad) {
		t.Errorf("expected ErrDataLoad for negative rent, got %v", err)
	}
}
