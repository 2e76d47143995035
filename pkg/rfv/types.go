// Package rfv computes Recency, Frequency and Value customer segmentation
// from a purchase ledger.
package rfv

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grade is a quartile bucket letter, A being the best bucket
type Grade string

// Quartile grades ordered from best to worst
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Metric names used in quartile tables and metric labels
const (
	MetricRecency   = "recency"
	MetricFrequency = "frequency"
	MetricValue     = "value"
)

// Transaction is a single ledger row
type Transaction struct {
	CustomerID   string          `json:"customer_id"`
	PurchaseDate time.Time       `json:"purchase_date"`
	PurchaseCode string          `json:"purchase_code"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// RecencyRow holds the latest purchase of a customer
type RecencyRow struct {
	CustomerID   string    `json:"customer_id"`
	LastPurchase time.Time `json:"last_purchase"`
	Days         int       `json:"recency"`
}

// FrequencyRow holds the purchase count of a customer
type FrequencyRow struct {
	CustomerID string `json:"customer_id"`
	Count      int    `json:"frequency"`
}

// ValueRow holds the total spend of a customer
type ValueRow struct {
	CustomerID string          `json:"customer_id"`
	Total      decimal.Decimal `json:"value"`
}

// Customer is the consolidated RFV record of one customer
type Customer struct {
	CustomerID     string          `json:"customer_id"`
	RecencyDays    int             `json:"recency"`
	Frequency      int             `json:"frequency"`
	Value          decimal.Decimal `json:"value"`
	RecencyGrade   Grade           `json:"r_quartile"`
	FrequencyGrade Grade           `json:"f_quartile"`
	ValueGrade     Grade           `json:"v_quartile"`
	Score          string          `json:"score"`
	Action         string          `json:"action"`
}

// Quartiles holds the 25th, 50th and 75th percentile of one metric
type Quartiles struct {
	Q25 float64 `json:"q25"`
	Q50 float64 `json:"q50"`
	Q75 float64 `json:"q75"`
}

// QuartileTable holds the quartile breakpoints of every metric
type QuartileTable struct {
	Recency   Quartiles `json:"recency"`
	Frequency Quartiles `json:"frequency"`
	Value     Quartiles `json:"value"`
}

// Result is the outcome of a full pipeline run
type Result struct {
	ReferenceDate time.Time      `json:"reference_date"`
	Transactions  int            `json:"transactions"`
	Recency       []RecencyRow   `json:"-"`
	Frequency     []FrequencyRow `json:"-"`
	Value         []ValueRow     `json:"-"`
	Customers     []Customer     `json:"customers"`
	Quartiles     QuartileTable  `json:"quartiles"`
	// Dropped lists customers missing from at least one aggregate
	Dropped []string `json:"dropped"`
}
