package rfv

import "sort"

// Filter returns the customers whose score is in the selection, preserving
// order. A nil selection keeps every customer; an empty one keeps none.
func Filter(customers []Customer, scores []string) []Customer {
	if scores == nil {
		return customers
	}

	// Create a set of selected scores for efficient lookup
	selected := make(map[string]bool, len(scores))
	for _, s := range scores {
		selected[s] = true
	}

	filtered := make([]Customer, 0, len(customers))
	for i := range customers {
		if selected[customers[i].Score] {
			filtered = append(filtered, customers[i])
		}
	}

	return filtered
}

// ScoreOptions returns the distinct scores present, sorted
func ScoreOptions(customers []Customer) []string {
	set := make(map[string]bool)
	for i := range customers {
		set[customers[i].Score] = true
	}

	options := make([]string, 0, len(set))
	for s := range set {
		options = append(options, s)
	}

	sort.Strings(options)

	return options
}
