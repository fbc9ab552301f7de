package models

import "time"

// Listing is one rental-listing snapshot from the Dubai housing dataset.
// Records are immutable once loaded; every downstream computation works
// on read-only slices of them.
type Listing struct {
	ID           int64
	Neighborhood string
	PropertyType string
	Bedrooms     int
	SizeSqft     float64
	MonthlyRent  float64
	Amenities    []string
	ListedAt     time.Time
	Lat          float64
	Lng          float64
}

// YearlyRent converts the monthly rent to the yearly figure Dubai
// listings are usually advertised with.
func (l *Listing) YearlyRent() float64 {
	return l.MonthlyRent * 12
}

// Constraints enumerates optional dataset filter bounds. The zero value
// matches every listing.
type Constraints struct {
	MinPrice      float64
	MaxPrice      float64 // 0 means no upper bound
	Neighborhoods []string
	MinBedrooms   int
	PropertyType  string
	From          time.Time
	To            time.Time
}

// Profile is the user's affordability input.
type Profile struct {
	MonthlyIncome float64
	ExpenseRatio  float64 // share of income reserved for non-rent expenses, in [0,1]
}

// RankedListing pairs a listing with its affordability score.
// A negative score means the listing rents above the user's budget.
// NeighborhoodPercentile is the listing's rent percentile within its own
// neighborhood's rent distribution: 100 × (share of the neighborhood's
// listings renting at or under this one).
type RankedListing struct {
	Listing                Listing
	Score                  float64
	PricePerBedroom        float64
	NeighborhoodPercentile float64
}

// NeighborhoodStats holds per-neighborhood comparison aggregates.
// Averages are nil when Count is zero.
type NeighborhoodStats struct {
	Count              int
	AvgRent            *float64
	AvgPricePerBedroom *float64
}

// TrendPoint is the average rent for one calendar month.
type TrendPoint struct {
	Month   string // "2006-01"
	AvgRent float64
	Count   int
}

// NeighborhoodMarker is the map-panel aggregate for one neighborhood:
// mean coordinates of its listings plus price and volume.
type NeighborhoodMarker struct {
	Neighborhood  string
	Lat           float64
	Lng           float64
	AvgYearlyRent float64
	Count         int
}

// MarketReport holds the computed insights over the whole dataset.
type MarketReport struct {
	TotalListings          int
	NeighborhoodCount      int
	AvgRent                float64
	MinRent                float64
	MaxRent                float64
	MostExpensive          *Listing
	CheapestNeighborhoods  []NeighborhoodMarker
	ListingsByNeighborhood map[string]int
	ListingsByPropertyType map[string]int
}
