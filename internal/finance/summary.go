package finance

import (
	"math"
	"time"
)

// Summarize derives the yearly aggregate for the given calendar year from a
// normalized transaction list. Transactions with unparseable dates are
// excluded from the year filter rather than raising. The function is pure
// and recomputes every figure from the filtered list on each call, so
// repeated calls with the same inputs yield bit-identical results.
//
// Expense totals are the absolute value of the SUM of expense amounts, not
// the sum of absolute values. Sources are inconsistent about expense signs,
// and summing first keeps mixed-sign corrections (refunds, adjustments)
// meaningful.
func Summarize(transactions []Transaction, year int) Summary {
	var yearTxs []Transaction
	for _, tx := range transactions {
		date, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			continue
		}
		if date.Year() == year {
			yearTxs = append(yearTxs, tx)
		}
	}

	income, expenses, net := totals(yearTxs)

	chart := make([]MonthSummary, 0, 12)
	for month := time.January; month <= time.December; month++ {
		var monthTxs []Transaction
		for _, tx := range yearTxs {
			// Dates re-parse cleanly here; yearTxs only holds parseable ones.
			date, _ := time.Parse("2006-01-02", tx.Date)
			if date.Month() == month {
				monthTxs = append(monthTxs, tx)
			}
		}

		mIncome, mExpenses, mNet := totals(monthTxs)
		chart = append(chart, MonthSummary{
			Month:    time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
			Income:   mIncome,
			Expenses: mExpenses,
			Net:      mNet,
		})
	}

	return Summary{
		Year:                year,
		AnnualTotalIncome:   income,
		AnnualTotalExpenses: expenses,
		AnnualNet:           net,
		AnnualChartData:     chart,
	}
}

// totals computes income, expenses (sum then abs) and net for one slice of
// transactions.
func totals(txs []Transaction) (income, expenses, net float64) {
	var expenseSum float64
	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			income += tx.Amount
		case TypeExpense:
			expenseSum += tx.Amount
		}
	}
	expenses = math.Abs(expenseSum)
	return income, expenses, income - expenses
}
