// Package dashboard is the fetch-and-present layer: it pulls raw record
// collections from Notion per configured database ID and feeds them through
// the pure finance core. All entities are derived fresh on every call.
package dashboard

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"

	"github.com/rvaldes/finance-dashboard/internal/config"
	"github.com/rvaldes/finance-dashboard/internal/finance"
	"github.com/rvaldes/finance-dashboard/internal/notion"
)

// Service exposes the normalized dashboard collections.
type Service struct {
	store notion.Service
	dbs   config.Databases
	log   zerolog.Logger
}

// NewService creates a dashboard service over the given Notion store.
func NewService(store notion.Service, dbs config.Databases, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		dbs:   dbs,
		log:   log,
	}
}

// Accounts returns the normalized account list.
func (s *Service) Accounts(ctx context.Context) ([]finance.Account, error) {
	pages, err := s.fetch(ctx, s.dbs.Accounts, "accounts")
	if err != nil {
		return nil, err
	}
	return finance.AccountsFromPages(pages), nil
}

// Debts returns the normalized debt list.
func (s *Service) Debts(ctx context.Context) ([]finance.Debt, error) {
	pages, err := s.fetch(ctx, s.dbs.Debts, "debts")
	if err != nil {
		return nil, err
	}
	return finance.DebtsFromPages(pages), nil
}

// Transactions fetches the expense and income collections concurrently,
// merges them into a single source-tagged stream sorted by date, and
// normalizes the result.
func (s *Service) Transactions(ctx context.Context) ([]finance.Transaction, error) {
	type fetchResult struct {
		pages []notionapi.Page
		err   error
	}

	expenseCh := make(chan fetchResult, 1)
	incomeCh := make(chan fetchResult, 1)

	go func() {
		pages, err := s.fetch(ctx, s.dbs.Expenses, "expenses")
		expenseCh <- fetchResult{pages, err}
	}()
	go func() {
		pages, err := s.fetch(ctx, s.dbs.Incomes, "incomes")
		incomeCh <- fetchResult{pages, err}
	}()

	expenses := <-expenseCh
	incomes := <-incomeCh
	if expenses.err != nil {
		return nil, fmt.Errorf("Transactions: %w", expenses.err)
	}
	if incomes.err != nil {
		return nil, fmt.Errorf("Transactions: %w", incomes.err)
	}

	merged := finance.MergeAll(expenses.pages, incomes.pages)
	return finance.TransactionsFromPages(merged), nil
}

// Summary returns the yearly aggregate for the given calendar year.
func (s *Service) Summary(ctx context.Context, year int) (finance.Summary, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return finance.Summary{}, err
	}
	return finance.Summarize(txs, year), nil
}

// fetch queries every page of one collection. An unset database ID is
// treated as "no data available", not as an error.
func (s *Service) fetch(ctx context.Context, databaseID, name string) ([]notionapi.Page, error) {
	if databaseID == "" {
		s.log.Warn().Str("collection", name).Msg("Database ID not configured, serving empty collection")
		return nil, nil
	}

	pages, err := notion.QueryAll(ctx, s.store, databaseID)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return pages, nil
}
