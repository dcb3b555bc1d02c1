package dashboard

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jomei/notionapi"

	"github.com/rvaldes/finance-dashboard/internal/config"
	"github.com/rvaldes/finance-dashboard/internal/finance"
	"github.com/rvaldes/finance-dashboard/internal/logger"
)

// mockStore is a Service mock serving canned pages per database ID. The
// expense and income fetches run concurrently, so access is locked.
type mockStore struct {
	mu      sync.Mutex
	pages   map[string][]notionapi.Page
	err     error
	queried []string
}

func (m *mockStore) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	m.mu.Lock()
	m.queried = append(m.queried, databaseID)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &notionapi.DatabaseQueryResponse{
		Results: m.pages[databaseID],
		HasMore: false,
	}, nil
}

func (m *mockStore) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	return &notionapi.Page{}, nil
}

func (m *mockStore) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	return &notionapi.Page{}, nil
}

func (m *mockStore) ArchivePage(ctx context.Context, pageID string) error {
	return nil
}

func txPage(id string, day time.Time, amount float64) notionapi.Page {
	d := notionapi.Date(day)
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"Date":   &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}},
			"Amount": &notionapi.NumberProperty{Number: amount},
			"Source": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: id}}},
		},
	}
}

func TestTransactions_MergesBothCollections(t *testing.T) {
	store := &mockStore{
		pages: map[string][]notionapi.Page{
			"exp-db": {txPage("coffee", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), -4.5)},
			"inc-db": {txPage("salary", time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC), 2500)},
		},
	}
	buf := &bytes.Buffer{}
	svc := NewService(store, config.Databases{Expenses: "exp-db", Incomes: "inc-db"}, logger.NewWithWriter(buf))

	txs, err := svc.Transactions(context.Background())
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}

	// Most recent first; types stamped from the source collections.
	if txs[0].ID != "salary" || txs[0].Type != finance.TypeIncome {
		t.Errorf("txs[0] = %+v, want salary/income", txs[0])
	}
	if txs[1].ID != "coffee" || txs[1].Type != finance.TypeExpense {
		t.Errorf("txs[1] = %+v, want coffee/expense", txs[1])
	}
}

func TestTransactions_UnsetDatabaseServesEmpty(t *testing.T) {
	store := &mockStore{
		pages: map[string][]notionapi.Page{
			"inc-db": {txPage("salary", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 100)},
		},
	}
	buf := &bytes.Buffer{}
	svc := NewService(store, config.Databases{Incomes: "inc-db"}, logger.NewWithWriter(buf))

	txs, err := svc.Transactions(context.Background())
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(txs) != 1 || txs[0].Type != finance.TypeIncome {
		t.Errorf("txs = %+v, want only the income record", txs)
	}

	// The expenses database must never be queried with an empty ID.
	for _, id := range store.queried {
		if id == "" {
			t.Error("store was queried with an empty database ID")
		}
	}
	if !bytes.Contains(buf.Bytes(), []byte("expenses")) {
		t.Errorf("expected a warning naming the skipped collection, got: %s", buf.String())
	}
}

func TestTransactions_PropagatesStoreErrors(t *testing.T) {
	store := &mockStore{err: errors.New("store unreachable")}
	buf := &bytes.Buffer{}
	svc := NewService(store, config.Databases{Expenses: "exp-db", Incomes: "inc-db"}, logger.NewWithWriter(buf))

	if _, err := svc.Transactions(context.Background()); err == nil {
		t.Error("expected error from unreachable store, got nil")
	}
}

func TestSummary_EndToEnd(t *testing.T) {
	store := &mockStore{
		pages: map[string][]notionapi.Page{
			"exp-db": {
				txPage("rent", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), -900),
			},
			"inc-db": {
				txPage("salary", time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), 2500),
				txPage("old", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 9999),
			},
		},
	}
	buf := &bytes.Buffer{}
	svc := NewService(store, config.Databases{Expenses: "exp-db", Incomes: "inc-db"}, logger.NewWithWriter(buf))

	s, err := svc.Summary(context.Background(), 2024)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.AnnualTotalIncome != 2500 {
		t.Errorf("income = %v, want 2500 (2023 record excluded)", s.AnnualTotalIncome)
	}
	if s.AnnualTotalExpenses != 900 {
		t.Errorf("expenses = %v, want 900", s.AnnualTotalExpenses)
	}
	if s.AnnualNet != 1600 {
		t.Errorf("net = %v, want 1600", s.AnnualNet)
	}
	if len(s.AnnualChartData) != 12 {
		t.Errorf("chart has %d entries, want 12", len(s.AnnualChartData))
	}
}
