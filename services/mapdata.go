package services

import (
	"sort"

	"housing-explorer/models"
)

// NeighborhoodMarkers aggregates listings into one map marker per
// neighborhood: mean coordinates, average yearly rent and listing count.
// Markers are sorted by neighborhood name for deterministic output.
func (s *InsightService) NeighborhoodMarkers(listings []models.Listing) []models.NeighborhoodMarker {
	type acc struct {
		count   int
		rentSum float64
		latSum  float64
		lngSum  float64
	}

	byNeighborhood := make(map[string]*acc)
	for _, l := range listings {
		a, ok := byNeighborhood[l.Neighborhood]
		if !ok {
			a = &acc{}
			byNeighborhood[l.Neighborhood] = a
		}
		a.count++
		a.rentSum += l.MonthlyRent
		a.latSum += l.Lat
		a.lngSum += l.Lng
	}

	markers := make([]models.NeighborhoodMarker, 0, len(byNeighborhood))
	for nb, a := range byNeighborhood {
		n := float64(a.count)
		markers = append(markers, models.NeighborhoodMarker{
			Neighborhood:  nb,
			Lat:           a.latSum / n,
			Lng:           a.lngSum / n,
			AvgYearlyRent: round2(a.rentSum / n * 12),
			Count:         a.count,
		})
	}

	sort.Slice(markers, func(i, j int) bool {
		return markers[i].Neighborhood < markers[j].Neighborhood
	})
	return markers
}
