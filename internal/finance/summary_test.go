package finance

import (
	"reflect"
	"testing"
)

func tx(date string, amount float64, typ TransactionType) Transaction {
	return Transaction{Date: date, Amount: amount, Type: typ}
}

func TestSummarize_Totals(t *testing.T) {
	txs := []Transaction{
		tx("2024-01-10", 3000, TypeIncome),
		tx("2024-02-20", 500, TypeIncome),
		tx("2024-01-15", -800, TypeExpense),
		tx("2024-03-05", -200, TypeExpense),
	}

	s := Summarize(txs, 2024)
	if s.AnnualTotalIncome != 3500 {
		t.Errorf("income = %v, want 3500", s.AnnualTotalIncome)
	}
	if s.AnnualTotalExpenses != 1000 {
		t.Errorf("expenses = %v, want 1000", s.AnnualTotalExpenses)
	}
	if s.AnnualNet != 2500 {
		t.Errorf("net = %v, want 2500", s.AnnualNet)
	}
}

// Expenses are summed first and only then the magnitude is taken. With a
// mix of signs the two orders disagree: |-100 + 50| = 50, not 150.
func TestSummarize_SumThenAbs(t *testing.T) {
	txs := []Transaction{
		tx("2024-06-01", -100, TypeExpense),
		tx("2024-06-02", 50, TypeExpense),
	}

	s := Summarize(txs, 2024)
	if s.AnnualTotalExpenses != 50 {
		t.Errorf("expenses = %v, want 50 (sum then abs)", s.AnnualTotalExpenses)
	}
	if s.AnnualChartData[5].Expenses != 50 {
		t.Errorf("June expenses = %v, want 50", s.AnnualChartData[5].Expenses)
	}
}

func TestSummarize_YearBoundary(t *testing.T) {
	txs := []Transaction{
		tx("2023-12-31", 100, TypeIncome),
		tx("2024-01-01", 200, TypeIncome),
	}

	s := Summarize(txs, 2024)
	if s.AnnualTotalIncome != 200 {
		t.Errorf("income = %v, want 200 (2023-12-31 excluded, 2024-01-01 included)", s.AnnualTotalIncome)
	}
}

func TestSummarize_UnparseableDatesExcluded(t *testing.T) {
	txs := []Transaction{
		tx("", 999, TypeIncome),
		tx("not-a-date", 999, TypeIncome),
		tx("2024-07-04", 10, TypeIncome),
	}

	s := Summarize(txs, 2024)
	if s.AnnualTotalIncome != 10 {
		t.Errorf("income = %v, want 10 (bad dates excluded)", s.AnnualTotalIncome)
	}
}

func TestSummarize_ChartAlwaysTwelveMonths(t *testing.T) {
	s := Summarize(nil, 2024)

	if len(s.AnnualChartData) != 12 {
		t.Fatalf("chart has %d entries, want 12", len(s.AnnualChartData))
	}
	if s.AnnualChartData[0].Month != "Jan 2024" || s.AnnualChartData[11].Month != "Dec 2024" {
		t.Errorf("month labels out of order: first %q, last %q",
			s.AnnualChartData[0].Month, s.AnnualChartData[11].Month)
	}
	for i, m := range s.AnnualChartData {
		if m.Income != 0 || m.Expenses != 0 || m.Net != 0 {
			t.Errorf("month %d not zeroed: %+v", i, m)
		}
	}
	if s.AnnualTotalIncome != 0 || s.AnnualTotalExpenses != 0 || s.AnnualNet != 0 {
		t.Errorf("empty input produced non-zero totals: %+v", s)
	}
}

func TestSummarize_MonthlyBreakdown(t *testing.T) {
	txs := []Transaction{
		tx("2024-01-10", 1000, TypeIncome),
		tx("2024-01-12", -300, TypeExpense),
		tx("2024-02-01", 500, TypeIncome),
	}

	s := Summarize(txs, 2024)

	jan := s.AnnualChartData[0]
	if jan.Income != 1000 || jan.Expenses != 300 || jan.Net != 700 {
		t.Errorf("January = %+v, want income 1000, expenses 300, net 700", jan)
	}
	feb := s.AnnualChartData[1]
	if feb.Income != 500 || feb.Expenses != 0 || feb.Net != 500 {
		t.Errorf("February = %+v, want income 500, expenses 0, net 500", feb)
	}
}

func TestSummarize_Deterministic(t *testing.T) {
	txs := []Transaction{
		tx("2024-01-10", 1234.56, TypeIncome),
		tx("2024-01-11", -78.9, TypeExpense),
		tx("2024-09-30", 0.1, TypeIncome),
	}

	first := Summarize(txs, 2024)
	second := Summarize(txs, 2024)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated summarization of the same input differed")
	}
}
