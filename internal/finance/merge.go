package finance

import (
	"sort"
	"time"

	"github.com/jomei/notionapi"

	"github.com/rvaldes/finance-dashboard/internal/notion"
)

// TaggedPage pairs a raw record with the transaction type derived from the
// collection it was fetched from. Making the label explicit keeps the merge
// contract testable independently of the fetch step.
type TaggedPage struct {
	Page notionapi.Page
	Type TransactionType
}

// MergeAll labels expense and income records with their source-derived
// type, concatenates them and sorts descending by the raw Date property
// (most recent first). Records with a missing or unparseable date are
// treated as the zero time, so they end up last. The sort is stable:
// repeated calls with identical input produce identical output.
func MergeAll(expensePages, incomePages []notionapi.Page) []TaggedPage {
	merged := make([]TaggedPage, 0, len(expensePages)+len(incomePages))
	for _, page := range expensePages {
		merged = append(merged, TaggedPage{Page: page, Type: TypeExpense})
	}
	for _, page := range incomePages {
		merged = append(merged, TaggedPage{Page: page, Type: TypeIncome})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return recordDate(merged[i].Page).After(recordDate(merged[j].Page))
	})

	return merged
}

func recordDate(page notionapi.Page) time.Time {
	if t, ok := notion.StartTime(page.Properties, "Date"); ok {
		return t
	}
	return time.Time{}
}
