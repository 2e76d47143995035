package rfv

import "sort"

// ScoreCount is the number of customers holding a score
type ScoreCount struct {
	Score string `json:"score"`
	Count int    `json:"count"`
}

// ActionCount is the number of customers per score and suggested action
type ActionCount struct {
	Score  string `json:"score"`
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// Distribution counts customers per score, most common first
func Distribution(customers []Customer) []ScoreCount {
	counts := make(map[string]int)
	for i := range customers {
		counts[customers[i].Score]++
	}

	dist := make([]ScoreCount, 0, len(counts))
	for score, n := range counts {
		dist = append(dist, ScoreCount{Score: score, Count: n})
	}

	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Score < dist[j].Score
	})

	return dist
}

// ActionCounts counts customers per (score, action) pair, most common first
func ActionCounts(customers []Customer) []ActionCount {
	type key struct{ score, action string }

	counts := make(map[key]int)
	for i := range customers {
		counts[key{customers[i].Score, customers[i].Action}]++
	}

	rows := make([]ActionCount, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, ActionCount{Score: k.score, Action: k.action, Count: n})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Score < rows[j].Score
	})

	return rows
}
