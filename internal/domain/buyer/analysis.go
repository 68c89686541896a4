package buyer

import "time"

const hoursPerYear = 365 * 24

// AnalyzeTransactions folds a buyer's transaction history into the summary
// the scoring engine consumes. Pure; now anchors the recency and frequency
// math.
func AnalyzeTransactions(txs []Transaction, now time.Time) *TransactionAnalysis {
	a := &TransactionAnalysis{Count: len(txs)}
	if len(txs) == 0 {
		return a
	}

	var priceSum float64
	var priced int
	var first, last *time.Time

	for i := range txs {
		tx := &txs[i]
		if tx.PurchasePrice != nil {
			priceSum += *tx.PurchasePrice
			priced++
		}
		d := effectiveDate(tx)
		if d == nil {
			continue
		}
		if first == nil || d.Before(*first) {
			first = d
		}
		if last == nil || d.After(*last) {
			last = d
		}
	}

	if priced > 0 {
		a.AvgPurchasePrice = priceSum / float64(priced)
	}
	a.FirstDate = first
	a.LastDate = last
	if last != nil {
		days := int(now.Sub(*last).Hours() / 24)
		if days < 0 {
			days = 0
		}
		a.DaysSinceLast = &days
	}
	if first != nil {
		// Frequency over the span from the first transaction to now, with a
		// one-year floor so a single recent deal doesn't read as many per
		// year.
		years := now.Sub(*first).Hours() / hoursPerYear
		if years < 1 {
			years = 1
		}
		a.PerYear = float64(a.Count) / years
	}
	return a
}

func effectiveDate(tx *Transaction) *time.Time {
	if tx.PurchaseDate != nil {
		return tx.PurchaseDate
	}
	return tx.SaleDate
}
