package rfv

import (
	"math"
	"sort"
)

// ComputeQuartiles returns the 25th, 50th and 75th percentile of every metric
// across the customer set
func ComputeQuartiles(customers []Customer) QuartileTable {
	recency := make([]float64, len(customers))
	frequency := make([]float64, len(customers))
	value := make([]float64, len(customers))

	for i := range customers {
		recency[i] = float64(customers[i].RecencyDays)
		frequency[i] = float64(customers[i].Frequency)
		value[i] = customers[i].Value.InexactFloat64()
	}

	return QuartileTable{
		Recency:   quartilesOf(recency),
		Frequency: quartilesOf(frequency),
		Value:     quartilesOf(value),
	}
}

func quartilesOf(values []float64) Quartiles {
	sort.Float64s(values)

	return Quartiles{
		Q25: Percentile(values, 0.25),
		Q50: Percentile(values, 0.50),
		Q75: Percentile(values, 0.75),
	}
}

// Percentile returns the q-th quantile of an ascending slice, interpolating
// linearly between the two nearest order statistics
func Percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	w := pos - float64(lo)

	return sorted[lo] + (sorted[hi]-sorted[lo])*w
}
