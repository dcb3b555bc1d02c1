package receipts

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jomei/notionapi"

	"github.com/rvaldes/finance-dashboard/internal/ai"
	"github.com/rvaldes/finance-dashboard/internal/jobs"
	"github.com/rvaldes/finance-dashboard/internal/logger"
)

type mockStore struct {
	createdDB    string
	createdProps notionapi.Properties
	createErr    error
}

func (m *mockStore) QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return &notionapi.DatabaseQueryResponse{}, nil
}

func (m *mockStore) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdDB = databaseID
	m.createdProps = properties
	return &notionapi.Page{ID: "page-123"}, nil
}

func (m *mockStore) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	return &notionapi.Page{}, nil
}

func (m *mockStore) ArchivePage(ctx context.Context, pageID string) error {
	return nil
}

type mockExtractor struct {
	receipt *ai.Receipt
	err     error
}

func (m *mockExtractor) ExtractReceipt(ctx context.Context, imageBytes []byte, mimeType string) (*ai.Receipt, error) {
	return m.receipt, m.err
}

func TestProcess_CreatesExpensePage(t *testing.T) {
	store := &mockStore{}
	extractor := &mockExtractor{
		receipt: &ai.Receipt{Date: "2024-08-12", Description: "Mercado Central", Amount: 34.9, Category: "Food"},
	}
	fetch := func(ctx context.Context, gcsURI string) ([]byte, error) {
		return []byte("image-bytes"), nil
	}

	buf := &bytes.Buffer{}
	p := NewProcessor(store, extractor, fetch, "exp-db", logger.NewWithWriter(buf))

	job := &jobs.ExtractReceiptJob{JobID: "j-1", GCSURI: "gs://b/receipts/x.jpg", ContentType: "image/jpeg"}
	if err := p.Process(context.Background(), job); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if store.createdDB != "exp-db" {
		t.Errorf("page created in %q, want exp-db", store.createdDB)
	}
	if job.PageID != "page-123" {
		t.Errorf("job.PageID = %q, want page-123", job.PageID)
	}

	title, ok := store.createdProps["Source"].(notionapi.TitleProperty)
	if !ok || len(title.Title) == 0 || title.Title[0].Text.Content != "Mercado Central" {
		t.Errorf("Source property = %+v, want Mercado Central title", store.createdProps["Source"])
	}
	amount, ok := store.createdProps["Amount"].(notionapi.NumberProperty)
	if !ok || amount.Number != 34.9 {
		t.Errorf("Amount property = %+v, want 34.9", store.createdProps["Amount"])
	}
}

func TestProcess_Failures(t *testing.T) {
	fetch := func(ctx context.Context, gcsURI string) ([]byte, error) {
		return []byte("image"), nil
	}
	buf := &bytes.Buffer{}
	log := logger.NewWithWriter(buf)
	job := &jobs.ExtractReceiptJob{JobID: "j-2", GCSURI: "gs://b/x.jpg"}

	t.Run("no expenses database", func(t *testing.T) {
		p := NewProcessor(&mockStore{}, &mockExtractor{}, fetch, "", log)
		if err := p.Process(context.Background(), job); err == nil {
			t.Error("expected error when expenses DB is unset")
		}
	})

	t.Run("extraction error", func(t *testing.T) {
		p := NewProcessor(&mockStore{}, &mockExtractor{err: errors.New("model unavailable")}, fetch, "exp-db", log)
		if err := p.Process(context.Background(), job); err == nil {
			t.Error("expected extraction error to propagate")
		}
	})

	t.Run("fetch error", func(t *testing.T) {
		failFetch := func(ctx context.Context, gcsURI string) ([]byte, error) {
			return nil, errors.New("object missing")
		}
		p := NewProcessor(&mockStore{}, &mockExtractor{}, failFetch, "exp-db", log)
		if err := p.Process(context.Background(), job); err == nil {
			t.Error("expected fetch error to propagate")
		}
	})
}

func TestExpenseProperties_SkipsUnparseableDate(t *testing.T) {
	props := ExpenseProperties(&ai.Receipt{Date: "pronto", Description: "Taxi", Amount: 9})
	if _, ok := props["Date"]; ok {
		t.Error("unparseable date should not produce a Date property")
	}
	if _, ok := props["Tags"]; ok {
		t.Error("empty category should not produce a Tags property")
	}
}
