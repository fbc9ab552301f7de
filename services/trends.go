package services

import (
	"sort"

	"housing-explorer/models"
)

// MonthlyTrend groups listings by calendar year-month of the listing date
// and returns average rents in ascending month order.
func (s *InsightService) MonthlyTrend(listings []models.Listing) []models.TrendPoint {
	type acc struct {
		count   int
		rentSum float64
	}

	byMonth := make(map[string]*acc)
	for _, l := range listings {
		key := l.ListedAt.Format("2006-01")
		a, ok := byMonth[key]
		if !ok {
			a = &acc{}
			byMonth[key] = a
		}
		a.count++
		a.rentSum += l.MonthlyRent
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	points := make([]models.TrendPoint, 0, len(months))
	for _, m := range months {
		a := byMonth[m]
		points = append(points, models.TrendPoint{
			Month:   m,
			AvgRent: round2(a.rentSum / float64(a.count)),
			Count:   a.count,
		})
	}
	return points
}

// TrendChange returns the percent change in average rent between the two
// most recent months, or nil when fewer than two months are present.
func (s *InsightService) TrendChange(points []models.TrendPoint) *float64 {
	if len(points) < 2 {
		return nil
	}
	prev := points[len(points)-2].AvgRent
	if prev == 0 {
		return nil
	}
	latest := points[len(points)-1].AvgRent
	change := round2((latest - prev) / prev * 100)
	return &change
}
