package testutil

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/shopspring/decimal"
)

// LedgerHeader is the header of the default ledger layout
const LedgerHeader = "ID_cliente,DiaCompra,CodigoCompra,ValorTotal"

// Purchase describes one synthetic ledger row relative to a reference date
type Purchase struct {
	Customer string
	DaysAgo  int
	Value    string
	// Code defaults to a unique purchase code when empty. NoCode leaves the
	// purchase code blank.
	Code string
}

// NoCode marks a purchase without a purchase code
const NoCode = "-"

// ReferenceDate is the fixed latest purchase date used by fixtures
//
//nolint:gochecknoglobals // Shared fixture constant
var ReferenceDate = time.Date(2021, time.December, 9, 0, 0, 0, 0, time.UTC)

// Transactions builds transactions from purchases
func Transactions(ref time.Time, purchases ...Purchase) []rfv.Transaction {
	txs := make([]rfv.Transaction, 0, len(purchases))
	for i, p := range purchases {
		txs = append(txs, rfv.Transaction{
			CustomerID:   p.Customer,
			PurchaseDate: ref.AddDate(0, 0, -p.DaysAgo),
			PurchaseCode: code(p, i),
			TotalValue:   decimal.RequireFromString(p.Value),
		})
	}

	return txs
}

// LedgerCSV renders purchases as a comma separated ledger with the default header
func LedgerCSV(ref time.Time, purchases ...Purchase) []byte {
	var buf bytes.Buffer

	buf.WriteString(LedgerHeader + "\n")
	for i, p := range purchases {
		_, _ = fmt.Fprintf(&buf, "%s,%s,%s,%s\n",
			p.Customer, ref.AddDate(0, 0, -p.DaysAgo).Format(time.DateOnly), code(p, i), p.Value)
	}

	return buf.Bytes()
}

// Population generates a deterministic population of n customers whose
// recency, frequency and value all spread across the quartiles
func Population(n int) []Purchase {
	purchases := make([]Purchase, 0, n*3)
	for i := 0; i < n; i++ {
		customer := fmt.Sprintf("P%03d", i)
		orders := i%5 + 1
		for j := 0; j < orders; j++ {
			purchases = append(purchases, Purchase{
				Customer: customer,
				DaysAgo:  (i*7)%120 + 1 + j*3,
				Value:    fmt.Sprintf("%d.50", (i*13)%40+1),
			})
		}
	}

	return purchases
}

func code(p Purchase, i int) string {
	switch p.Code {
	case NoCode:
		return ""
	case "":
	default:
		return p.Code
	}

	return fmt.Sprintf("C%05d", i)
}
