package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"housing-explorer/config"
	"housing-explorer/dataset"
	"housing-explorer/models"
	"housing-explorer/services"
	"housing-explorer/session"
	"housing-explorer/utils"
)

// sessions tracks the live sessions of this process; each command run
// owns exactly one and ends it when done.
var sessions = session.NewRegistry()

var (
	sourceFlag string
	dataFlag   string

	minPrice      float64
	maxPrice      float64
	neighborhoods []string
	minBedrooms   int
	propertyType  string
	fromDate      string
	toDate        string
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger()
	logger.SetDebug(cfg.Debug)

	rootCmd := &cobra.Command{
		Use:   "explorer",
		Short: "Dubai housing affordability explorer",
		Long:  "Browse Dubai rental-price data: market insights, affordability ranking,\nneighborhood comparison and price trends over a static listing dataset.",
	}

	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", cfg.DataSource, "dataset source: csv, sqlite or postgres")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", cfg.DataPath, "path to the csv/sqlite dataset")
	rootCmd.PersistentFlags().Float64Var(&minPrice, "min-price", 0, "minimum monthly rent (AED)")
	rootCmd.PersistentFlags().Float64Var(&maxPrice, "max-price", 0, "maximum monthly rent (AED), 0 for no limit")
	rootCmd.PersistentFlags().StringSliceVar(&neighborhoods, "neighborhood", nil, "restrict to these neighborhoods")
	rootCmd.PersistentFlags().IntVar(&minBedrooms, "min-bedrooms", 0, "minimum bedroom count")
	rootCmd.PersistentFlags().StringVar(&propertyType, "type", "", "property type (Apartment, Villa, ...)")
	rootCmd.PersistentFlags().StringVar(&fromDate, "from", "", "earliest listing date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&toDate, "to", "", "latest listing date (YYYY-MM-DD)")

	rootCmd.AddCommand(insightsCmd(cfg, logger))
	rootCmd.AddCommand(affordCmd(cfg, logger))
	rootCmd.AddCommand(compareCmd(cfg, logger))
	rootCmd.AddCommand(trendsCmd(cfg, logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openSession loads the dataset from the selected source, applies the
// shared filter flags and wraps the result in a session.
func openSession(cfg *config.Config, logger *utils.Logger, profile models.Profile) (*session.Session, error) {
	src, err := openSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	records, err := src.Load()
	if err != nil {
		return nil, err
	}

	constraints, err := flagConstraints()
	if err != nil {
		return nil, err
	}

	s := session.New(dataset.Filter(records, constraints), constraints, profile)
	sessions.Add(s)
	logger.Debug("[session] %s over %d listings", s.ID, len(s.Records))
	return s, nil
}

func openSource(cfg *config.Config, logger *utils.Logger) (dataset.Source, error) {
	switch sourceFlag {
	case "csv":
		return dataset.NewCSVSource(dataFlag, logger), nil
	case "sqlite":
		return dataset.NewSQLiteSource(dataFlag, logger)
	case "postgres":
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Duration(cfg.RetryBaseMs) * time.Millisecond,
			Logger:      logger,
		}
		return dataset.NewPostgresSource(cfg.DSN(), retry, logger)
	default:
		return nil, fmt.Errorf("unknown dataset source %q (want csv, sqlite or postgres)", sourceFlag)
	}
}

func flagConstraints() (models.Constraints, error) {
	c := models.Constraints{
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		Neighborhoods: neighborhoods,
		MinBedrooms:   minBedrooms,
		PropertyType:  propertyType,
	}

	var err error
	if fromDate != "" {
		if c.From, err = time.Parse("2006-01-02", fromDate); err != nil {
			return c, fmt.Errorf("bad --from date: %w", err)
		}
	}
	if toDate != "" {
		if c.To, err = time.Parse("2006-01-02", toDate); err != nil {
			return c, fmt.Errorf("bad --to date: %w", err)
		}
	}
	return c, nil
}

// exitForError logs the failure and exits with a code that distinguishes
// fatal dataset problems (1) from correctable profile input (2).
func exitForError(logger *utils.Logger, err error) {
	logger.Error("%v", err)
	if errors.Is(err, models.ErrInvalidProfile) {
		os.Exit(2)
	}
	os.Exit(1)
}

func insightsCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Print the whole-market insight report",
		Run: func(cmd *cobra.Command, args []string) {
			s, err := openSession(cfg, logger, models.Profile{})
			if err != nil {
				exitForError(logger, err)
			}
			defer sessions.End(s.ID)

			svc := services.NewInsightService(logger)
			svc.Print(svc.Generate(s.Records))
		},
	}
}

func affordCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	var (
		income       float64
		expenseRatio float64
		top          int
	)

	cmd := &cobra.Command{
		Use:   "afford",
		Short: "Rank listings against your income",
		Run: func(cmd *cobra.Command, args []string) {
			profile := models.Profile{MonthlyIncome: income, ExpenseRatio: expenseRatio}

			s, err := openSession(cfg, logger, profile)
			if err != nil {
				exitForError(logger, err)
			}
			defer sessions.End(s.ID)

			engine := services.NewAffordabilityEngine(logger, cfg.RentIncomeRatio)
			maxRent, err := engine.MaxAffordableRent(profile)
			if err != nil {
				exitForError(logger, err)
			}
			ranked, err := engine.Rank(s.Records, profile)
			if err != nil {
				exitForError(logger, err)
			}

			services.NewInsightService(logger).PrintRanked(ranked, maxRent, top)
		},
	}

	cmd.Flags().Float64Var(&income, "income", 0, "monthly income (AED)")
	cmd.Flags().Float64Var(&expenseRatio, "expense-ratio", 0, "share of income reserved for non-rent expenses [0,1]")
	cmd.Flags().IntVar(&top, "top", cfg.TopListings, "number of listings to show, 0 for all")
	_ = cmd.MarkFlagRequired("income")

	return cmd
}

func compareCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	var (
		income       float64
		expenseRatio float64
	)

	cmd := &cobra.Command{
		Use:   "compare [neighborhood]...",
		Short: "Compare rent statistics across neighborhoods",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			profile := models.Profile{MonthlyIncome: income, ExpenseRatio: expenseRatio}

			s, err := openSession(cfg, logger, profile)
			if err != nil {
				exitForError(logger, err)
			}
			defer sessions.End(s.ID)

			engine := services.NewAffordabilityEngine(logger, cfg.RentIncomeRatio)
			stats := engine.Compare(args, s.Records)

			var shares map[string]*float64
			if income > 0 {
				if shares, err = engine.BudgetShare(args, s.Records, profile); err != nil {
					exitForError(logger, err)
				}
			}

			services.NewInsightService(logger).PrintComparison(stats, shares)
		},
	}

	cmd.Flags().Float64Var(&income, "income", 0, "monthly income (AED), enables the within-budget column")
	cmd.Flags().Float64Var(&expenseRatio, "expense-ratio", 0, "share of income reserved for non-rent expenses [0,1]")

	return cmd
}

func trendsCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Show average rent by month",
		Run: func(cmd *cobra.Command, args []string) {
			s, err := openSession(cfg, logger, models.Profile{})
			if err != nil {
				exitForError(logger, err)
			}
			defer sessions.End(s.ID)

			svc := services.NewInsightService(logger)
			points := svc.MonthlyTrend(s.Records)
			svc.PrintTrend(points, svc.TrendChange(points))
		},
	}
}
