package dataset

import "housing-explorer/models"

// Source is the interface any dataset backend must satisfy. Load returns
// the full, validated listing table; callers treat the result as read-only.
type Source interface {
	Load() ([]models.Listing, error)
	Close() error
}
