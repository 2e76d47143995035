package handlers

import (
	"github.com/ethpandaops/rfv/pkg/rfv"
)

// ExportLinks points at the memoized exports of an analysis
type ExportLinks struct {
	Key      string `json:"key"`
	Filename string `json:"filename"`
	XLSX     string `json:"xlsx"`
	CSV      string `json:"csv"`
}

// AnalysisResponse carries every table of an RFV analysis
type AnalysisResponse struct {
	ID            string             `json:"id"`
	File          string             `json:"file"`
	ReferenceDate string             `json:"reference_date"`
	Transactions  int                `json:"transactions"`
	Recency       []rfv.RecencyRow   `json:"recency"`
	Frequency     []rfv.FrequencyRow `json:"frequency"`
	Value         []rfv.ValueRow     `json:"value"`
	Customers     []rfv.Customer     `json:"customers"`
	Quartiles     rfv.QuartileTable  `json:"quartiles"`
	ScoreOptions  []string           `json:"score_options"`
	Segmented     []rfv.Customer     `json:"segmented"`
	Distribution  []rfv.ScoreCount   `json:"distribution"`
	ActionCounts  []rfv.ActionCount  `json:"action_counts"`
	Dropped       []string           `json:"dropped"`
	Export        ExportLinks        `json:"export"`
}

// ActionsResponse lists the fixed score to action table
type ActionsResponse struct {
	Actions []rfv.ActionEntry `json:"actions"`
	Default string            `json:"default"`
}

func head[T any](rows []T, n int) []T {
	if n < len(rows) {
		return rows[:n]
	}

	return rows
}
