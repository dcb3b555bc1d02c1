package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/rvaldes/finance-dashboard/internal/config"
	"github.com/rvaldes/finance-dashboard/internal/dashboard"
	"github.com/rvaldes/finance-dashboard/internal/logger"
	"github.com/rvaldes/finance-dashboard/internal/notion"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	year := flag.Int("year", time.Now().Year(), "Calendar year to report on")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ctx = logger.WithContext(ctx, log)

	store := notion.NewClient(cfg.NotionToken)
	svc := dashboard.NewService(store, cfg.Databases, log)

	summary, err := svc.Summary(ctx, *year)
	if err != nil {
		log.Fatal().Err(err).Int("year", *year).Msg("Failed to compute summary")
	}

	fmt.Printf("Financial summary for %d\n", summary.Year)
	fmt.Printf("  Income:   %12.2f\n", summary.AnnualTotalIncome)
	fmt.Printf("  Expenses: %12.2f\n", summary.AnnualTotalExpenses)
	fmt.Printf("  Net:      %12.2f\n", summary.AnnualNet)
	fmt.Println()
	fmt.Println("Month      Income      Expenses")
	for _, m := range summary.AnnualChartData {
		fmt.Printf("%-9s %10.2f %12.2f\n", m.Month, m.Income, m.Expenses)
	}
}
