package services

import (
	"fmt"
	"sort"
	"strings"

	"housing-explorer/models"
)

// PrintRanked renders the affordability ranking. maxRent is the profile's
// computed budget; top limits the rows shown (0 shows everything).
func (s *InsightService) PrintRanked(ranked []models.RankedListing, maxRent float64, top int) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  💰 AFFORDABILITY RANKING\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("  Max affordable rent : \033[1;32m%.0f AED/month\033[0m\n", maxRent)
	fmt.Printf("  %s\n", thin)

	if len(ranked) == 0 {
		fmt.Printf("  No listings match the current filters\n\n")
		return
	}

	rows := ranked
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	for i, r := range rows {
		marker := "\033[1;32m✓\033[0m"
		if r.Score < 0 {
			marker = "\033[1;31m✗\033[0m"
		}
		fmt.Printf("  %s \033[1m%2d.\033[0m %-22s %-9s %-6s %8.0f AED  (%+.0f)  p%.0f\n",
			marker, i+1,
			truncate(r.Listing.Neighborhood, 20),
			truncate(r.Listing.PropertyType, 9),
			bedroomsLabel(r.Listing.Bedrooms),
			r.Listing.MonthlyRent,
			r.Score,
			r.NeighborhoodPercentile)
	}
	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// PrintComparison renders per-neighborhood stats alongside the share of
// listings within budget (shares may be nil when no profile was given).
func (s *InsightService) PrintComparison(stats map[string]models.NeighborhoodStats, shares map[string]*float64) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏘️  NEIGHBORHOOD COMPARISON\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	names := make([]string, 0, len(stats))
	for n := range stats {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		st := stats[n]
		fmt.Printf("\033[1;33m  %s\033[0m\n", n)
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  Listings : \033[1m%d\033[0m\n", st.Count)
		if st.Count == 0 {
			fmt.Printf("  No listings match the current filters\n\n")
			continue
		}
		fmt.Printf("  Avg rent          : \033[1;32m%.0f AED/month\033[0m\n", *st.AvgRent)
		fmt.Printf("  Avg rent/bedroom  : \033[1;32m%.0f AED/month\033[0m\n", *st.AvgPricePerBedroom)
		if shares != nil {
			if share := shares[n]; share != nil {
				fmt.Printf("  Within budget     : \033[1m%.1f%%\033[0m\n", *share*100)
			}
		}
		fmt.Println()
	}
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

// PrintTrend renders the monthly average-rent series as a text chart.
func (s *InsightService) PrintTrend(points []models.TrendPoint, change *float64) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📈 RENTAL PRICE TRENDS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	if len(points) == 0 {
		fmt.Printf("  No listings match the current filters\n\n")
		return
	}

	maxAvg := points[0].AvgRent
	for _, p := range points {
		if p.AvgRent > maxAvg {
			maxAvg = p.AvgRent
		}
	}

	fmt.Printf("\033[1;33m  Average Rent by Month (AED)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, p := range points {
		width := 0
		if maxAvg > 0 {
			width = int(p.AvgRent / maxAvg * 30)
		}
		bar := strings.Repeat("█", width)
		fmt.Printf("  %s  %-30s %8.0f (%d listings)\n", p.Month, bar, p.AvgRent, p.Count)
	}

	if change != nil {
		fmt.Printf("\n  Latest month-over-month change : \033[1m%+.1f%%\033[0m\n", *change)
	}
	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}
