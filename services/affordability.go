package services

import (
	"fmt"
	"sort"

	"housing-explorer/models"
	"housing-explorer/utils"
)

// DefaultRentIncomeRatio is the conventional share of income that should
// go toward rent. Configurable because the 30% rule is a guideline, not a
// verified constant.
const DefaultRentIncomeRatio = 0.3

// AffordabilityEngine evaluates user profiles against the listing
// dataset. Every method is a pure function of its inputs.
type AffordabilityEngine struct {
	logger          *utils.Logger
	rentIncomeRatio float64
}

// NewAffordabilityEngine creates an engine with the given rent-to-income
// cap; values outside (0,1] fall back to DefaultRentIncomeRatio.
func NewAffordabilityEngine(logger *utils.Logger, rentIncomeRatio float64) *AffordabilityEngine {
	if rentIncomeRatio <= 0 || rentIncomeRatio > 1 {
		rentIncomeRatio = DefaultRentIncomeRatio
	}
	return &AffordabilityEngine{logger: logger, rentIncomeRatio: rentIncomeRatio}
}

// MaxAffordableRent computes the monthly rent ceiling:
// income × (1 − expense ratio) × rent-to-income cap.
func (e *AffordabilityEngine) MaxAffordableRent(p models.Profile) (float64, error) {
	if p.MonthlyIncome <= 0 {
		return 0, fmt.Errorf("%w: monthly income must be positive, got %.2f",
			models.ErrInvalidProfile, p.MonthlyIncome)
	}
	if p.ExpenseRatio < 0 || p.ExpenseRatio > 1 {
		return 0, fmt.Errorf("%w: expense ratio must be within [0,1], got %.2f",
			models.ErrInvalidProfile, p.ExpenseRatio)
	}
	return p.MonthlyIncome * (1 - p.ExpenseRatio) * e.rentIncomeRatio, nil
}

// Rank scores every listing against the profile: score = max affordable
// rent − rent, so higher is more affordable and negative means out of
// budget. Ordering is deterministic: score descending, ties broken by
// ascending rent then neighborhood name. Ranking an already-ranked
// sequence yields the same order.
func (e *AffordabilityEngine) Rank(records []models.Listing, p models.Profile) ([]models.RankedListing, error) {
	maxRent, err := e.MaxAffordableRent(p)
	if err != nil {
		return nil, err
	}

	rentsByNeighborhood := neighborhoodRents(records)

	ranked := make([]models.RankedListing, 0, len(records))
	for _, l := range records {
		ranked = append(ranked, models.RankedListing{
			Listing:                l,
			Score:                  maxRent - l.MonthlyRent,
			PricePerBedroom:        pricePerBedroom(l),
			NeighborhoodPercentile: rentPercentile(rentsByNeighborhood[l.Neighborhood], l.MonthlyRent),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Listing.MonthlyRent != b.Listing.MonthlyRent {
			return a.Listing.MonthlyRent < b.Listing.MonthlyRent
		}
		return a.Listing.Neighborhood < b.Listing.Neighborhood
	})

	return ranked, nil
}

// Compare aggregates rent statistics per requested neighborhood. Every
// requested neighborhood appears in the result; those with no matching
// listings report Count 0 and nil averages rather than being omitted.
func (e *AffordabilityEngine) Compare(neighborhoods []string, records []models.Listing) map[string]models.NeighborhoodStats {
	type acc struct {
		count   int
		rentSum float64
		ppbSum  float64
	}

	accs := make(map[string]*acc, len(neighborhoods))
	for _, n := range neighborhoods {
		accs[n] = &acc{}
	}

	for _, l := range records {
		a, ok := accs[l.Neighborhood]
		if !ok {
			continue
		}
		a.count++
		a.rentSum += l.MonthlyRent
		a.ppbSum += pricePerBedroom(l)
	}

	stats := make(map[string]models.NeighborhoodStats, len(accs))
	for n, a := range accs {
		s := models.NeighborhoodStats{Count: a.count}
		if a.count > 0 {
			avgRent := round2(a.rentSum / float64(a.count))
			avgPpb := round2(a.ppbSum / float64(a.count))
			s.AvgRent = &avgRent
			s.AvgPricePerBedroom = &avgPpb
		}
		stats[n] = s
	}
	return stats
}

// BudgetShare reports, per requested neighborhood, the fraction of its
// listings renting at or under the profile's max affordable rent. Nil for
// neighborhoods with no listings.
func (e *AffordabilityEngine) BudgetShare(neighborhoods []string, records []models.Listing, p models.Profile) (map[string]*float64, error) {
	maxRent, err := e.MaxAffordableRent(p)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(neighborhoods))
	within := make(map[string]int, len(neighborhoods))
	for _, n := range neighborhoods {
		counts[n] = 0
	}
	for _, l := range records {
		if _, ok := counts[l.Neighborhood]; !ok {
			continue
		}
		counts[l.Neighborhood]++
		if l.MonthlyRent <= maxRent {
			within[l.Neighborhood]++
		}
	}

	shares := make(map[string]*float64, len(counts))
	for n, total := range counts {
		if total == 0 {
			shares[n] = nil
			continue
		}
		share := float64(within[n]) / float64(total)
		shares[n] = &share
	}
	return shares, nil
}

// neighborhoodRents groups the input's rents per neighborhood, sorted
// ascending so percentile lookups can binary-search.
func neighborhoodRents(records []models.Listing) map[string][]float64 {
	rents := make(map[string][]float64)
	for _, l := range records {
		rents[l.Neighborhood] = append(rents[l.Neighborhood], l.MonthlyRent)
	}
	for _, r := range rents {
		sort.Float64s(r)
	}
	return rents
}

// rentPercentile returns 100 × (share of rents at or under rent).
// rents must be sorted ascending; it is never empty here since the
// listing itself is always among them.
func rentPercentile(rents []float64, rent float64) float64 {
	if len(rents) == 0 {
		return 0
	}
	atOrUnder := sort.Search(len(rents), func(i int) bool { return rents[i] > rent })
	return round2(float64(atOrUnder) / float64(len(rents)) * 100)
}

// pricePerBedroom divides rent by bedroom count; studios count as one
// sleeping space so the metric stays finite.
func pricePerBedroom(l models.Listing) float64 {
	bedrooms := l.Bedrooms
	if bedrooms < 1 {
		bedrooms = 1
	}
	return l.MonthlyRent / float64(bedrooms)
}
