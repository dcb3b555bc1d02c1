package finance

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/rvaldes/finance-dashboard/internal/notion"
)

// AccountsFromPages maps raw account records to Account values, in input
// order. Missing or malformed fields fall back to defaults instead of
// failing the batch; a nil input yields an empty slice.
func AccountsFromPages(pages []notionapi.Page) []Account {
	accounts := make([]Account, 0, len(pages))
	for _, page := range pages {
		accounts = append(accounts, Account{
			ID:       string(page.ID),
			Name:     notion.Text(page.Properties, "Name", "N/A"),
			Type:     notion.Text(page.Properties, "Account Type", "Other"),
			Balance:  notion.Number(page.Properties, "Balance Amount", 0),
			IsActive: notion.Flag(page.Properties, "Is Active", false),
			Currency: notion.Text(page.Properties, "Currency", "USD"),
		})
	}
	return accounts
}

// DebtsFromPages maps raw debt records to Debt values, in input order.
// Only a Type select exactly equal to DebtSentinel yields kind "Debt";
// every other value, including an absent one, yields "Debtor". A nil input
// yields an empty slice.
func DebtsFromPages(pages []notionapi.Page) []Debt {
	debts := make([]Debt, 0, len(pages))
	for _, page := range pages {
		kind := KindDebtor
		if notion.Text(page.Properties, "Type", "") == DebtSentinel {
			kind = KindDebt
		}

		debts = append(debts, Debt{
			ID:     string(page.ID),
			Name:   notion.Text(page.Properties, "Title", "N/A"),
			Type:   kind,
			Total:  notion.Number(page.Properties, "Debt Amount", 0),
			Paid:   notion.Number(page.Properties, "Amount Paid", 0),
			Status: notion.Text(page.Properties, "Status", "Pendiente"),
			Reason: notion.Text(page.Properties, "Reason", ""),
			Date:   notion.Text(page.Properties, "Date", time.Now().Format("2006-01-02")),
		})
	}
	return debts
}

// TransactionsFromPages maps tagged raw records to Transaction values, in
// input order. The income/expense type is copied from the tag attached by
// the merger, never read from the record's own fields, and the amount is
// taken verbatim (no sign normalization). The caller supplies a well-formed,
// possibly empty list.
func TransactionsFromPages(tagged []TaggedPage) []Transaction {
	txs := make([]Transaction, 0, len(tagged))
	for _, tp := range tagged {
		txs = append(txs, Transaction{
			ID:          string(tp.Page.ID),
			Date:        notion.Text(tp.Page.Properties, "Date", ""),
			Description: notion.Text(tp.Page.Properties, "Source", ""),
			Amount:      notion.Number(tp.Page.Properties, "Amount", 0),
			Type:        tp.Type,
			Category:    notion.Text(tp.Page.Properties, "Tags", ""),
		})
	}
	return txs
}
