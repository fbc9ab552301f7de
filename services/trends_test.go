package services

import (
	"testing"

	"housing-explorer/models"
	"housing-explorer/utils"
)

func TestMonthlyTrendGrouping(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	records := []models.Listing{
		{MonthlyRent: 2000, ListedAt: day("2023-01-05")},
		{MonthlyRent: 4000, ListedAt: day("2023-01-20")},
		{MonthlyRent: 3300, ListedAt: day("2023-02-11")},
	}

	points := svc.MonthlyTrend(records)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}

	if points[0].Month != "2023-01" || points[1].Month != "2023-02" {
		t.Errorf("months not ascending: %q, %q", points[0].Month, points[1].Month)
	}
	if points[0].AvgRent != 3000 {
		t.Errorf("2023-01 avg: got %.2f, want 3000", points[0].AvgRent)
	}
	if points[0].Count != 2 {
		t.Errorf("2023-01 count: got %d, want 2", points[0].Count)
	}
	if points[1].AvgRent != 3300 {
		t.Errorf("2023-02 avg: got %.2f, want 3300", points[1].AvgRent)
	}
}

func TestTrendChange(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	points := []models.TrendPoint{
		{Month: "2023-01", AvgRent: 3000, Count: 2},
		{Month: "2023-02", AvgRent: 3300, Count: 1},
	}

	change := svc.TrendChange(points)
	if change == nil {
		t.Fatal("change should not be nil for two months")
	}
	if *change != 10 {
		t.Errorf("change: got %.2f%%, want 10%%", *change)
	}
}

func TestTrendChangeTooFewPoints(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	if svc.TrendChange(nil) != nil {
		t.Error("nil input should yield nil change")
	}
	if svc.TrendChange([]models.TrendPoint{{Month: "2023-01", AvgRent: 3000}}) != nil {
		t.Error("single month should yield nil change")
	}
}

func TestMonthlyTrendEmpty(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	points := svc.MonthlyTrend(nil)
	if len(points) != 0 {
		t.Errorf("got %d points for empty input, want 0", len(points))
	}
}
