package rfv

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// ReferenceDate returns the most recent purchase date in the ledger
func ReferenceDate(txs []Transaction) (time.Time, error) {
	if len(txs) == 0 {
		return time.Time{}, ErrEmptyLedger
	}

	ref := txs[0].PurchaseDate
	for i := range txs[1:] {
		if txs[i+1].PurchaseDate.After(ref) {
			ref = txs[i+1].PurchaseDate
		}
	}

	return ref, nil
}

// Recency returns, per customer, the latest purchase and the whole days
// elapsed between it and the reference date
func Recency(txs []Transaction, ref time.Time) []RecencyRow {
	last := make(map[string]time.Time)
	for i := range txs {
		tx := &txs[i]
		if tx.CustomerID == "" {
			continue
		}
		if cur, ok := last[tx.CustomerID]; !ok || tx.PurchaseDate.After(cur) {
			last[tx.CustomerID] = tx.PurchaseDate
		}
	}

	rows := make([]RecencyRow, 0, len(last))
	for id, date := range last {
		rows = append(rows, RecencyRow{
			CustomerID:   id,
			LastPurchase: date,
			Days:         int(ref.Sub(date) / day),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CustomerID < rows[j].CustomerID
	})

	return rows
}

// Frequency counts the purchase records of each customer
func Frequency(txs []Transaction) []FrequencyRow {
	counts := make(map[string]int)
	for i := range txs {
		tx := &txs[i]
		if tx.CustomerID == "" {
			continue
		}
		counts[tx.CustomerID]++
	}

	rows := make([]FrequencyRow, 0, len(counts))
	for id, n := range counts {
		rows = append(rows, FrequencyRow{CustomerID: id, Count: n})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CustomerID < rows[j].CustomerID
	})

	return rows
}

// MonetaryValue sums, per customer, the total value of their purchases
func MonetaryValue(txs []Transaction) []ValueRow {
	totals := make(map[string]decimal.Decimal)
	for i := range txs {
		tx := &txs[i]
		if tx.CustomerID == "" {
			continue
		}
		totals[tx.CustomerID] = totals[tx.CustomerID].Add(tx.TotalValue)
	}

	rows := make([]ValueRow, 0, len(totals))
	for id, total := range totals {
		rows = append(rows, ValueRow{CustomerID: id, Total: total})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CustomerID < rows[j].CustomerID
	})

	return rows
}

// Join merges the three aggregates on customer id. Customers absent from any
// aggregate are left out of the result and returned as dropped.
func Join(recency []RecencyRow, frequency []FrequencyRow, value []ValueRow) (customers []Customer, dropped []string) {
	freqByID := make(map[string]int, len(frequency))
	for _, f := range frequency {
		freqByID[f.CustomerID] = f.Count
	}

	valueByID := make(map[string]decimal.Decimal, len(value))
	for _, v := range value {
		valueByID[v.CustomerID] = v.Total
	}

	seen := make(map[string]bool, len(recency))
	customers = make([]Customer, 0, len(recency))

	for _, r := range recency {
		seen[r.CustomerID] = true

		f, hasFreq := freqByID[r.CustomerID]
		v, hasValue := valueByID[r.CustomerID]
		if !hasFreq || !hasValue {
			dropped = append(dropped, r.CustomerID)
			continue
		}

		customers = append(customers, Customer{
			CustomerID:  r.CustomerID,
			RecencyDays: r.Days,
			Frequency:   f,
			Value:       v,
		})
	}

	for id := range freqByID {
		if !seen[id] {
			dropped = append(dropped, id)
			seen[id] = true
		}
	}

	for id := range valueByID {
		if !seen[id] {
			dropped = append(dropped, id)
		}
	}

	sort.Strings(dropped)

	return customers, dropped
}
