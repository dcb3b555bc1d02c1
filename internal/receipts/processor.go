// Package receipts runs the asynchronous receipt-to-expense flow: fetch the
// staged image, extract transaction fields with the AI assistant, and create
// the expense record in Notion.
package receipts

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"

	"github.com/rvaldes/finance-dashboard/internal/ai"
	"github.com/rvaldes/finance-dashboard/internal/jobs"
	"github.com/rvaldes/finance-dashboard/internal/notion"
)

// Extractor is the slice of the AI assistant the processor needs.
type Extractor interface {
	ExtractReceipt(ctx context.Context, imageBytes []byte, mimeType string) (*ai.Receipt, error)
}

// FetchFunc downloads the staged image bytes for a gs:// URI.
type FetchFunc func(ctx context.Context, gcsURI string) ([]byte, error)

// Processor handles ExtractReceiptJob work items.
type Processor struct {
	store      notion.Service
	extractor  Extractor
	fetch      FetchFunc
	expensesDB string
	log        zerolog.Logger
}

// NewProcessor wires a receipt processor. expensesDB is the Notion database
// the extracted expense pages are created in.
func NewProcessor(store notion.Service, extractor Extractor, fetch FetchFunc, expensesDB string, log zerolog.Logger) *Processor {
	return &Processor{
		store:      store,
		extractor:  extractor,
		fetch:      fetch,
		expensesDB: expensesDB,
		log:        log,
	}
}

// Process runs one job end to end and records the created page ID on the
// job. It is used as the queue's jobs.Handler.
func (p *Processor) Process(ctx context.Context, job *jobs.ExtractReceiptJob) error {
	if p.expensesDB == "" {
		return fmt.Errorf("Process: no expenses database configured")
	}

	imageBytes, err := p.fetch(ctx, job.GCSURI)
	if err != nil {
		return fmt.Errorf("Process: fetch receipt image: %w", err)
	}

	receipt, err := p.extractor.ExtractReceipt(ctx, imageBytes, job.ContentType)
	if err != nil {
		return fmt.Errorf("Process: extract receipt: %w", err)
	}

	page, err := p.store.CreatePage(ctx, p.expensesDB, ExpenseProperties(receipt))
	if err != nil {
		return fmt.Errorf("Process: create expense page: %w", err)
	}
	job.PageID = string(page.ID)

	p.log.Info().
		Str("job_id", job.JobID).
		Str("page_id", job.PageID).
		Str("description", receipt.Description).
		Float64("amount", receipt.Amount).
		Msg("Created expense from receipt")

	return nil
}

// ExpenseProperties converts an extracted receipt into the expense
// database's property shape (Source title, Amount, Date, Tags).
func ExpenseProperties(r *ai.Receipt) notionapi.Properties {
	props := notionapi.Properties{
		"Source": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: r.Description,
					},
				},
			},
		},
		"Amount": notionapi.NumberProperty{
			Number: r.Amount,
		},
	}

	if date, err := time.Parse("2006-01-02", r.Date); err == nil {
		d := notionapi.Date(date)
		props["Date"] = notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: &d,
			},
		}
	}

	if r.Category != "" {
		props["Tags"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: r.Category,
			},
		}
	}

	return props
}
