package dataset

import "housing-explorer/models"

// Filter returns the listings matching every set bound in c, preserving
// input order. It is a pure predicate conjunction: unset bounds match
// everything, and an empty Constraints value is the identity.
func Filter(records []models.Listing, c models.Constraints) []models.Listing {
	var wanted map[string]struct{}
	if len(c.Neighborhoods) > 0 {
		wanted = make(map[string]struct{}, len(c.Neighborhoods))
		for _, n := range c.Neighborhoods {
			wanted[n] = struct{}{}
		}
	}

	out := make([]models.Listing, 0, len(records))
	for _, l := range records {
		if matches(l, c, wanted) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l models.Listing, c models.Constraints, wanted map[string]struct{}) bool {
	if l.MonthlyRent < c.MinPrice {
		return false
	}
	if c.MaxPrice > 0 && l.MonthlyRent > c.MaxPrice {
		return false
	}
	if wanted != nil {
		if _, ok := wanted[l.Neighborhood]; !ok {
			return false
		}
	}
	if l.Bedrooms < c.MinBedrooms {
		return false
	}
	if c.PropertyType != "" && l.PropertyType != c.PropertyType {
		return false
	}
	if !c.From.IsZero() && l.ListedAt.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && l.ListedAt.After(c.To) {
		return false
	}
	return true
}
