package services

import (
	"errors"
	"math"
	"testing"

	"housing-explorer/models"
	"housing-explorer/utils"
)

func testEngine() *AffordabilityEngine {
	return NewAffordabilityEngine(utils.NewLogger(), DefaultRentIncomeRatio)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMaxAffordableRentScenario(t *testing.T) {
	e := testEngine()
	got, err := e.MaxAffordableRent(models.Profile{MonthlyIncome: 20000, ExpenseRatio: 0.4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 20000 × 0.6 × 0.3
	if !almostEqual(got, 3600) {
		t.Errorf("got %.4f, want 3600", got)
	}
}

func TestMaxAffordableRentMonotonicInIncome(t *testing.T) {
	e := testEngine()
	var prev float64
	for _, income := range []float64{5000, 10000, 20000, 40000} {
		got, err := e.MaxAffordableRent(models.Profile{MonthlyIncome: income, ExpenseRatio: 0.4})
		if err != nil {
			t.Fatalf("income %.0f: %v", income, err)
		}
		if got <= prev {
			t.Errorf("income %.0f: %.2f not greater than %.2f", income, got, prev)
		}
		prev = got
	}
}

func TestMaxAffordableRentMonotonicInExpenseRatio(t *testing.T) {
	e := testEngine()
	prev := math.Inf(1)
	for _, ratio := range []float64{0.1, 0.3, 0.5, 0.9} {
		got, err := e.MaxAffordableRent(models.Profile{MonthlyIncome: 20000, ExpenseRatio: ratio})
		if err != nil {
			t.Fatalf("ratio %.1f: %v", ratio, err)
		}
		if got >= prev {
			t.Errorf("ratio %.1f: %.2f not less than %.2f", ratio, got, prev)
		}
		prev = got
	}
}

func TestMaxAffordableRentInvalidProfile(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name    string
		profile models.Profile
	}{
		{"zero income", models.Profile{MonthlyIncome: 0, ExpenseRatio: 0.4}},
		{"negative income", models.Profile{MonthlyIncome: -100, ExpenseRatio: 0.4}},
		{"ratio above one", models.Profile{MonthlyIncome: 20000, ExpenseRatio: 1.5}},
		{"negative ratio", models.Profile{MonthlyIncome: 20000, ExpenseRatio: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.MaxAffordableRent(tt.profile)
			if !errors.Is(err, models.ErrInvalidProfile) {
				t.Errorf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}
}

func rankFixture() []models.Listing {
	return []models.Listing{
		{ID: 1, Neighborhood: "Downtown Dubai", Bedrooms: 2, MonthlyRent: 4000},
		{ID: 2, Neighborhood: "Deira", Bedrooms: 1, MonthlyRent: 2000},
		{ID: 3, Neighborhood: "Palm Jumeirah", Bedrooms: 4, MonthlyRent: 8000},
		{ID: 4, Neighborhood: "Business Bay", Bedrooms: 1, MonthlyRent: 4000},
	}
}

func TestRankOrder(t *testing.T) {
	e := testEngine()
	// income 20000, no expenses → budget 6000
	ranked, err := e.Rank(rankFixture(), models.Profile{MonthlyIncome: 20000, ExpenseRatio: 0})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	// cheapest first; the 4000 tie breaks on neighborhood name
	wantIDs := []int64{2, 4, 1, 3}
	for i, want := range wantIDs {
		if ranked[i].Listing.ID != want {
			t.Errorf("position %d: got ID %d, want %d", i, ranked[i].Listing.ID, want)
		}
	}

	if !almostEqual(ranked[0].Score, 4000) {
		t.Errorf("top score: got %.2f, want 4000", ranked[0].Score)
	}
	if ranked[3].Score >= 0 {
		t.Errorf("8000 AED listing should score negative, got %.2f", ranked[3].Score)
	}
}

func TestRankStableUnderReranking(t *testing.T) {
	e := testEngine()
	profile := models.Profile{MonthlyIncome: 20000, ExpenseRatio: 0}

	first, err := e.Rank(rankFixture(), profile)
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	listings := make([]models.Listing, len(first))
	for i, r := range first {
		listings[i] = r.Listing
	}

	second, err := e.Rank(listings, profile)
	if err != nil {
		t.Fatalf("re-Rank failed: %v", err)
	}

	for i := range first {
		if first[i].Listing.ID != second[i].Listing.ID {
			t.Errorf("position %d: order changed from ID %d to %d",
				i, first[i].Listing.ID, second[i].Listing.ID)
		}
	}
}

func TestRankPricePerBedroom(t *testing.T) {
	e := testEngine()
	records := []models.Listing{
		{ID: 1, Neighborhood: "JLT", Bedrooms: 0, MonthlyRent: 4300},
		{ID: 2, Neighborhood: "JBR", Bedrooms: 2, MonthlyRent: 12500},
	}
	ranked, err := e.Rank(records, models.Profile{MonthlyIncome: 50000, ExpenseRatio: 0})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	for _, r := range ranked {
		switch r.Listing.ID {
		case 1: // studio divides by one
			if !almostEqual(r.PricePerBedroom, 4300) {
				t.Errorf("studio price/bedroom: got %.2f, want 4300", r.PricePerBedroom)
			}
		case 2:
			if !almostEqual(r.PricePerBedroom, 6250) {
				t.Errorf("2BR price/bedroom: got %.2f, want 6250", r.PricePerBedroom)
			}
		}
	}
}

func TestRankNeighborhoodPercentile(t *testing.T) {
	e := testEngine()
	records := []models.Listing{
		{ID: 1, Neighborhood: "Deira", Bedrooms: 1, MonthlyRent: 1000},
		{ID: 2, Neighborhood: "Deira", Bedrooms: 1, MonthlyRent: 2000},
		{ID: 3, Neighborhood: "Deira", Bedrooms: 2, MonthlyRent: 3000},
		{ID: 4, Neighborhood: "Deira", Bedrooms: 2, MonthlyRent: 4000},
		{ID: 5, Neighborhood: "JVC", Bedrooms: 1, MonthlyRent: 4900},
		{ID: 6, Neighborhood: "JVC", Bedrooms: 1, MonthlyRent: 4900},
	}

	ranked, err := e.Rank(records, models.Profile{MonthlyIncome: 50000, ExpenseRatio: 0})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}

	// percentile is computed within the listing's own neighborhood only
	want := map[int64]float64{
		1: 25, 2: 50, 3: 75, 4: 100, // Deira quartiles
		5: 100, 6: 100, // equal rents share the top percentile
	}
	for _, r := range ranked {
		if !almostEqual(r.NeighborhoodPercentile, want[r.Listing.ID]) {
			t.Errorf("ID %d: percentile got %.2f, want %.2f",
				r.Listing.ID, r.NeighborhoodPercentile, want[r.Listing.ID])
		}
	}
}

func TestRankSingleListingPercentile(t *testing.T) {
	e := testEngine()
	records := []models.Listing{
		{ID: 1, Neighborhood: "Palm Jumeirah", Bedrooms: 4, MonthlyRent: 45000},
	}
	ranked, err := e.Rank(records, models.Profile{MonthlyIncome: 50000, ExpenseRatio: 0})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if !almostEqual(ranked[0].NeighborhoodPercentile, 100) {
		t.Errorf("sole listing percentile: got %.2f, want 100", ranked[0].NeighborhoodPercentile)
	}
}

func TestRankInvalidProfile(t *testing.T) {
	e := testEngine()
	_, err := e.Rank(rankFixture(), models.Profile{MonthlyIncome: 0, ExpenseRatio: 0.4})
	if !errors.Is(err, models.ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestCompare(t *testing.T) {
	e := testEngine()
	records := []models.Listing{
		{Neighborhood: "Dubai Marina", Bedrooms: 1, MonthlyRent: 2000},
		{Neighborhood: "Dubai Marina", Bedrooms: 2, MonthlyRent: 4000},
		{Neighborhood: "Deira", Bedrooms: 1, MonthlyRent: 3600},
	}

	stats := e.Compare([]string{"Dubai Marina", "Deira", "Nowhere"}, records)

	marina := stats["Dubai Marina"]
	if marina.Count != 2 {
		t.Errorf("Marina count: got %d, want 2", marina.Count)
	}
	if marina.AvgRent == nil || *marina.AvgRent != 3000 {
		t.Errorf("Marina avg rent: got %v, want 3000", marina.AvgRent)
	}
	if marina.AvgPricePerBedroom == nil || *marina.AvgPricePerBedroom != 2000 {
		t.Errorf("Marina avg price/bedroom: got %v, want 2000", marina.AvgPricePerBedroom)
	}

	nowhere, ok := stats["Nowhere"]
	if !ok {
		t.Fatal("neighborhood with no listings must still be reported")
	}
	if nowhere.Count != 0 {
		t.Errorf("Nowhere count: got %d, want 0", nowhere.Count)
	}
	if nowhere.AvgRent != nil || nowhere.AvgPricePerBedroom != nil {
		t.Errorf("Nowhere averages must be nil, got %v / %v", nowhere.AvgRent, nowhere.AvgPricePerBedroom)
	}
}

func TestBudgetShare(t *testing.T) {
	e := testEngine()
	records := []models.Listing{
		{Neighborhood: "Dubai Marina", MonthlyRent: 2000},
		{Neighborhood: "Dubai Marina", MonthlyRent: 4000},
		{Neighborhood: "Dubai Marina", MonthlyRent: 8000},
	}

	// budget 6000
	shares, err := e.BudgetShare([]string{"Dubai Marina", "Nowhere"},
		records, models.Profile{MonthlyIncome: 20000, ExpenseRatio: 0})
	if err != nil {
		t.Fatalf("BudgetShare failed: %v", err)
	}

	marina := shares["Dubai Marina"]
	if marina == nil {
		t.Fatal("Marina share should not be nil")
	}
	if !almostEqual(*marina, 2.0/3.0) {
		t.Errorf("Marina share: got %.4f, want %.4f", *marina, 2.0/3.0)
	}

	if shares["Nowhere"] != nil {
		t.Errorf("Nowhere share must be nil, got %v", *shares["Nowhere"])
	}
}
