package rfv

import (
	"context"
	"time"

	"github.com/ethpandaops/rfv/pkg/observability"
	"github.com/sirupsen/logrus"
)

// Pipeline runs the RFV segmentation end to end
type Pipeline struct {
	log logrus.FieldLogger
}

// NewPipeline creates a new pipeline
func NewPipeline(log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		log: log.WithField("component", "rfv.pipeline"),
	}
}

// Run computes the RFV table of a ledger. The only failure is an empty ledger.
func (p *Pipeline) Run(ctx context.Context, txs []Transaction) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	ref, err := ReferenceDate(txs)
	if err != nil {
		observability.RecordAnalysis(observability.StatusFailed, time.Since(start).Seconds())
		return nil, err
	}

	recency := Recency(txs, ref)
	frequency := Frequency(txs)
	value := MonetaryValue(txs)

	customers, dropped := Join(recency, frequency, value)
	if len(dropped) > 0 {
		p.log.WithFields(logrus.Fields{
			"dropped":   len(dropped),
			"customers": len(customers),
		}).Warn("Customers missing from an aggregate were dropped from the RFV table")
	}

	if dropped == nil {
		dropped = []string{}
	}

	table := ComputeQuartiles(customers)
	Classify(customers, table)

	duration := time.Since(start)

	observability.RecordAnalysis(observability.StatusSuccess, duration.Seconds())
	observability.RecordCustomers(len(customers), len(dropped))

	for _, sc := range Distribution(customers) {
		observability.RecordScore(sc.Score, sc.Count)
	}

	p.log.WithFields(logrus.Fields{
		"transactions":   len(txs),
		"customers":      len(customers),
		"reference_date": ref.Format(time.DateOnly),
		"duration":       duration,
	}).Debug("RFV pipeline completed")

	return &Result{
		ReferenceDate: ref,
		Transactions:  len(txs),
		Recency:       recency,
		Frequency:     frequency,
		Value:         value,
		Customers:     customers,
		Quartiles:     table,
		Dropped:       dropped,
	}, nil
}
