package rfv

import "sort"

// DefaultAction is assigned to scores without a dedicated action
const DefaultAction = "Review individually."

//nolint:gochecknoglobals // Fixed lookup table
var actions = map[string]string{
	"AAA": "Top customers! Reward them to build loyalty.",
	"AAB": "High potential. Encourage more purchases.",
	"ABB": "Recent and frequent customers.",
	"DDD": "Inactive. Re-engage or drop.",
	"DAA": "Former high-value customers. Try to win them back.",
	"CAA": "Important customers who have gone quiet.",
	"ABC": "Customers with room to grow.",
	"CBB": "Frequent buyers with low spend. Upsell?",
	"AAC": "Recent buyers with a low ticket.",
}

// ActionEntry is one row of the action table
type ActionEntry struct {
	Score  string `json:"score"`
	Action string `json:"action"`
}

// ActionFor returns the suggested marketing action for a score
func ActionFor(score string) string {
	if action, ok := actions[score]; ok {
		return action
	}

	return DefaultAction
}

// Actions returns a copy of the action table sorted by score
func Actions() []ActionEntry {
	entries := make([]ActionEntry, 0, len(actions))
	for score, action := range actions {
		entries = append(entries, ActionEntry{Score: score, Action: action})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Score < entries[j].Score
	})

	return entries
}
