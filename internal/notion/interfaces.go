package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

// Service defines the operations this application needs from the Notion API.
// Keeping it narrow makes handlers and the dashboard layer mockable in tests.
type Service interface {
	// QueryDatabase runs one query page against a Notion database.
	QueryDatabase(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)

	// CreatePage creates a page in a Notion database with the given properties.
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)

	// UpdatePage updates the properties of an existing page.
	UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error)

	// ArchivePage archives a page (Notion's flavor of deletion).
	ArchivePage(ctx context.Context, pageID string) error
}
