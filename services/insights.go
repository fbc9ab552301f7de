package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"housing-explorer/models"
	"housing-explorer/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the whole-market report over the loaded dataset.
func (s *InsightService) Generate(listings []models.Listing) *models.MarketReport {
	report := &models.MarketReport{
		ListingsByNeighborhood: make(map[string]int),
		ListingsByPropertyType: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)
	report.MinRent = listings[0].MonthlyRent
	report.MaxRent = listings[0].MonthlyRent

	var total float64
	for i := range listings {
		l := listings[i]
		total += l.MonthlyRent
		if l.MonthlyRent < report.MinRent {
			report.MinRent = l.MonthlyRent
		}
		if l.MonthlyRent >= report.MaxRent {
			report.MaxRent = l.MonthlyRent
			report.MostExpensive = &listings[i]
		}
		report.ListingsByNeighborhood[l.Neighborhood]++
		if l.PropertyType != "" {
			report.ListingsByPropertyType[l.PropertyType]++
		}
	}

	report.AvgRent = round2(total / float64(len(listings)))
	report.MinRent = round2(report.MinRent)
	report.MaxRent = round2(report.MaxRent)
	report.NeighborhoodCount = len(report.ListingsByNeighborhood)

	// Cheapest 5 neighborhoods by average yearly rent
	markers := s.NeighborhoodMarkers(listings)
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].AvgYearlyRent < markers[j].AvgYearlyRent
	})
	if len(markers) > 5 {
		markers = markers[:5]
	}
	report.CheapestNeighborhoods = markers

	return report
}

// Print renders the market report to the terminal.
func (s *InsightService) Print(r *models.MarketReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏙️  DUBAI HOUSING MARKET INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total listings : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  Neighborhoods  : \033[1m%d\033[0m\n", r.NeighborhoodCount)
	fmt.Println()

	// Rent Stats
	fmt.Printf("\033[1;33m  Rent Statistics (AED/month)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalListings > 0 {
		fmt.Printf("  Average rent : \033[1;32m%.0f AED\033[0m\n", r.AvgRent)
		fmt.Printf("  Minimum rent : \033[1;32m%.0f AED\033[0m\n", r.MinRent)
		fmt.Printf("  Maximum rent : \033[1;32m%.0f AED\033[0m\n", r.MaxRent)
	} else {
		fmt.Printf("  No rent data available\n")
	}
	fmt.Println()

	// Most Expensive
	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s %s in %s\n",
			bedroomsLabel(r.MostExpensive.Bedrooms),
			r.MostExpensive.PropertyType,
			r.MostExpensive.Neighborhood)
		fmt.Printf("  Rent : \033[1;31m%.0f AED/month\033[0m (%.0f AED/year)\n",
			r.MostExpensive.MonthlyRent, r.MostExpensive.YearlyRent())
		fmt.Println()
	}

	// Cheapest neighborhoods
	fmt.Printf("\033[1;33m  Cheapest Neighborhoods (avg yearly rent)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.CheapestNeighborhoods) == 0 {
		fmt.Printf("  No neighborhood data\n")
	} else {
		for i, m := range r.CheapestNeighborhoods {
			fmt.Printf("  \033[1m%d.\033[0m %-30s \033[1;32m%.0f AED\033[0m (%d listings)\n",
				i+1, truncate(m.Neighborhood, 28), m.AvgYearlyRent, m.Count)
		}
	}
	fmt.Println()

	// Listings by Neighborhood
	fmt.Printf("\033[1;33m  Listings by Neighborhood\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByNeighborhood) == 0 {
		fmt.Printf("  No neighborhood data\n")
	} else {
		type nbCount struct {
			nb    string
			count int
		}
		var nbs []nbCount
		for nb, cnt := range r.ListingsByNeighborhood {
			nbs = append(nbs, nbCount{nb, cnt})
		}
		sort.Slice(nbs, func(i, j int) bool {
			if nbs[i].count != nbs[j].count {
				return nbs[i].count > nbs[j].count
			}
			return nbs[i].nb < nbs[j].nb
		})
		for _, nc := range nbs {
			bar := strings.Repeat("█", nc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(nc.nb, 28), bar, nc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func bedroomsLabel(n int) string {
	if n == 0 {
		return "Studio"
	}
	return fmt.Sprintf("%d BR", n)
}

// round2 rounds to two decimals; handles negative values so it is safe
// for percent changes as well as price stats.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// truncate shortens s to max runes; slicing on runes keeps multi-byte
// neighborhood names valid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
