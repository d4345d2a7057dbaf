package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avolkov/pennywise/internal/domain"
)

// Report is the derived spending summary returned by /api/analytics.
// Expense detection goes by amount sign, not by the mutable type field.
type Report struct {
	TotalSpent        float64            `json:"total_spent"`
	TotalTransactions int                `json:"total_transactions"`
	AvgTransaction    float64            `json:"avg_transaction"`
	CategoryData      map[string]float64 `json:"category_data"`
	MonthlyData       map[string]float64 `json:"monthly_data"`
}

func zeroReport() Report {
	return Report{
		CategoryData: map[string]float64{},
		MonthlyData:  map[string]float64{},
	}
}

// Report computes the summary over the user's resident transactions. A user
// whose transactions were never loaded in this process gets a zeroed report;
// analytics is a pure read and does not pull collections into memory.
func (l *Ledger) Report(userID string) Report {
	l.mu.Lock()
	st, ok := l.users[userID]
	l.mu.Unlock()
	if !ok {
		return zeroReport()
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.transactionsLoaded {
		return zeroReport()
	}
	return buildReport(st.transactions)
}

func buildReport(txs []*domain.Transaction) Report {
	report := zeroReport()
	report.TotalTransactions = len(txs)

	totalSpent := decimal.Zero
	category := map[string]decimal.Decimal{}
	monthly := map[string]decimal.Decimal{}

	for _, t := range txs {
		if !t.Amount.IsNegative() {
			continue
		}
		abs := t.Amount.Abs()
		totalSpent = totalSpent.Add(abs)
		category[t.Category] = category[t.Category].Add(abs)

		// Transactions whose date does not parse are left out of the
		// monthly breakdown only.
		if d, err := time.Parse("2006-01-02", t.Date); err == nil {
			key := d.Format("January 2006")
			monthly[key] = monthly[key].Add(abs)
		}
	}

	report.TotalSpent = totalSpent.InexactFloat64()
	if report.TotalTransactions > 0 {
		avg := totalSpent.Div(decimal.NewFromInt(int64(report.TotalTransactions)))
		report.AvgTransaction = avg.Round(2).InexactFloat64()
	}
	for k, v := range category {
		report.CategoryData[k] = v.InexactFloat64()
	}
	for k, v := range monthly {
		report.MonthlyData[k] = v.InexactFloat64()
	}
	return report
}
