package rfv

// GradeRecency buckets a recency in days. Fewer days is better.
func GradeRecency(days float64, q Quartiles) Grade {
	switch {
	case days <= q.Q25:
		return GradeA
	case days <= q.Q50:
		return GradeB
	case days <= q.Q75:
		return GradeC
	default:
		return GradeD
	}
}

// GradeHigherBetter buckets a frequency or value. Larger is better.
func GradeHigherBetter(x float64, q Quartiles) Grade {
	switch {
	case x <= q.Q25:
		return GradeD
	case x <= q.Q50:
		return GradeC
	case x <= q.Q75:
		return GradeB
	default:
		return GradeA
	}
}

// Score concatenates the grades in recency, frequency, value order
func Score(r, f, v Grade) string {
	return string(r) + string(f) + string(v)
}

// Classify fills in grades, score and action of every customer in place
func Classify(customers []Customer, table QuartileTable) {
	for i := range customers {
		c := &customers[i]
		c.RecencyGrade = GradeRecency(float64(c.RecencyDays), table.Recency)
		c.FrequencyGrade = GradeHigherBetter(float64(c.Frequency), table.Frequency)
		c.ValueGrade = GradeHigherBetter(c.Value.InexactFloat64(), table.Value)
		c.Score = Score(c.RecencyGrade, c.FrequencyGrade, c.ValueGrade)
		c.Action = ActionFor(c.Score)
	}
}
