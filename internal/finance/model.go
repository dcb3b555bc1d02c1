// Package finance holds the pure normalization and aggregation core of the
// dashboard: raw Notion records in, fixed-shape entities and yearly
// summaries out. Nothing in this package performs I/O.
package finance

// TransactionType labels a transaction by the collection it was fetched
// from, not by anything stored on the record itself.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Debt kind values. A debt record whose Type select matches DebtSentinel is
// money we owe; every other value (or no value at all) means someone owes us.
const (
	KindDebt     = "Debt"
	KindDebtor   = "Debtor"
	DebtSentinel = "Deuda"
)

// Account is a normalized bank/cash account row ready for display.
type Account struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Balance  float64 `json:"balance"`
	IsActive bool    `json:"isActive"`
	Currency string  `json:"currency"`
}

// Debt is a normalized debt/debtor row.
type Debt struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Total  float64 `json:"total"`
	Paid   float64 `json:"paid"`
	Status string  `json:"status"`
	Reason string  `json:"reason"`
	Date   string  `json:"date"`
}

// Transaction is a normalized movement. Amount carries whatever sign the
// source record stored; aggregation applies magnitudes explicitly and must
// not assume expenses are negative.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
}

// MonthSummary is one entry of the 12-month chart series.
type MonthSummary struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// Summary is the derived yearly aggregate consumed by the overview and
// chart views. It is recomputed on every request and never persisted.
type Summary struct {
	Year                int            `json:"year"`
	AnnualTotalIncome   float64        `json:"annualTotalIncome"`
	AnnualTotalExpenses float64        `json:"annualTotalExpenses"`
	AnnualNet           float64        `json:"annualNet"`
	AnnualChartData     []MonthSummary `json:"annualChartData"`
}
