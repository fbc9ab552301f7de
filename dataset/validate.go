package dataset

import (
	"fmt"
	"strings"

	"housing-explorer/models"
)

// validateListing rejects malformed rows. Unlike a scraper pipeline that
// drops bad records and moves on, a static dataset with a broken row is a
// broken dataset: the whole load fails.
func validateListing(l models.Listing, row int) error {
	switch {
	case strings.TrimSpace(l.Neighborhood) == "":
		return fmt.Errorf("%w: row %d: missing neighborhood", models.ErrDataLoad, row)
	case l.MonthlyRent < 0:
		return fmt.Errorf("%w: row %d: negative rent %.2f", models.ErrDataLoad, row, l.MonthlyRent)
	case l.Bedrooms < 0:
		return fmt.Errorf("%w: row %d: negative bedroom count %d", models.ErrDataLoad, row, l.Bedrooms)
	case l.SizeSqft <= 0:
		return fmt.Errorf("%w: row %d: non-positive floor area %.1f", models.ErrDataLoad, row, l.SizeSqft)
	case l.ListedAt.IsZero():
		return fmt.Errorf("%w: row %d: missing listing date", models.ErrDataLoad, row)
	}
	return nil
}

// splitAmenities parses the ";"-separated amenity column into a tag set,
// dropping empties so "pool;;gym" and "pool;gym" are equivalent.
func splitAmenities(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
