package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ethpandaops/rfv/pkg/export"
	"github.com/ethpandaops/rfv/pkg/ledger"
	"github.com/ethpandaops/rfv/pkg/rfv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	analyzeInput   string
	analyzeOutput  string
	analyzeScores  string
	analyzePreview int
)

// analyzeCmd segments a ledger file from the command line
//
//nolint:gochecknoglobals // Cobra commands are typically global
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Segment a purchase ledger file",
	Long: `Reads a purchase ledger (CSV or XLSX), prints the RFV tables and
optionally writes the segmented table to a CSV or XLSX file.

Examples:
  rfv analyze --input compras.csv
  rfv analyze --input compras.csv --scores AAA,DDD
  rfv analyze --input compras.xlsx --output RFV_segmentado.xlsx`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "ledger file to analyze (.csv or .xlsx)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "write the full RFV table to this file (.csv or .xlsx)")
	analyzeCmd.Flags().StringVar(&analyzeScores, "scores", "", "comma separated scores to show in the segmented table")
	analyzeCmd.Flags().IntVar(&analyzePreview, "preview", 5, "rows of each intermediate aggregate to print")

	_ = analyzeCmd.MarkFlagRequired("input")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	config, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if validationErr := config.Ledger.Validate(); validationErr != nil {
		return validationErr
	}
	if validationErr := config.Export.Validate(); validationErr != nil {
		return validationErr
	}

	f, err := os.Open(analyzeInput)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	ctx := cmd.Context()

	txs, err := ledger.NewReader(&config.Ledger, logger).Read(ctx, filepath.Base(analyzeInput), f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", analyzeInput, err)
	}

	result, err := rfv.NewPipeline(logger).Run(ctx, txs)
	if err != nil {
		return err
	}

	var scores []string
	if analyzeScores != "" {
		scores = splitScores(analyzeScores)
	}

	renderReport(cmd.OutOrStdout(), result, scores, analyzePreview)

	if analyzeOutput == "" {
		return nil
	}

	return writeExport(analyzeOutput, config.Export.SheetName, result.Customers)
}

func splitScores(raw string) []string {
	scores := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if s := strings.ToUpper(strings.TrimSpace(part)); s != "" {
			scores = append(scores, s)
		}
	}

	return scores
}

func writeExport(path, sheet string, customers []rfv.Customer) error {
	var (
		data []byte
		err  error
	)

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		data, err = export.EncodeCSV(customers)
	} else {
		data, err = export.EncodeXLSX(customers, sheet)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	logger.WithField("path", path).Info("Export written")

	return nil
}

// renderReport prints every table of an analysis
func renderReport(out io.Writer, result *rfv.Result, scores []string, preview int) {
	_, _ = fmt.Fprintf(out, "Reference date: %s\n", result.ReferenceDate.Format(time.DateOnly))
	_, _ = fmt.Fprintf(out, "Transactions: %d, customers: %d, dropped: %d\n\n",
		result.Transactions, len(result.Customers), len(result.Dropped))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "CUSTOMER\tLAST PURCHASE\tRECENCY")
	for _, row := range headRows(result.Recency, preview) {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", row.CustomerID, row.LastPurchase.Format(time.DateOnly), row.Days)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "CUSTOMER\tFREQUENCY")
	for _, row := range headRows(result.Frequency, preview) {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", row.CustomerID, row.Count)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "CUSTOMER\tVALUE")
	for _, row := range headRows(result.Value, preview) {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row.CustomerID, row.Total.StringFixed(2))
	}
	_, _ = fmt.Fprintln(w)

	q := result.Quartiles
	_, _ = fmt.Fprintln(w, "QUANTILE\tRECENCY\tFREQUENCY\tVALUE")
	_, _ = fmt.Fprintf(w, "0.25\t%g\t%g\t%g\n", q.Recency.Q25, q.Frequency.Q25, q.Value.Q25)
	_, _ = fmt.Fprintf(w, "0.50\t%g\t%g\t%g\n", q.Recency.Q50, q.Frequency.Q50, q.Value.Q50)
	_, _ = fmt.Fprintf(w, "0.75\t%g\t%g\t%g\n", q.Recency.Q75, q.Frequency.Q75, q.Value.Q75)
	_, _ = fmt.Fprintln(w)

	segmented := rfv.Filter(result.Customers, scores)

	_, _ = fmt.Fprintln(w, "CUSTOMER\tRECENCY\tFREQUENCY\tVALUE\tSCORE\tACTION")
	for i := range segmented {
		c := &segmented[i]
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n",
			c.CustomerID, c.RecencyDays, c.Frequency, c.Value.StringFixed(2), c.Score, c.Action)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "SCORE\tCUSTOMERS")
	for _, sc := range rfv.Distribution(result.Customers) {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", sc.Score, sc.Count)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "SCORE\tACTION\tCOUNT")
	for _, ac := range rfv.ActionCounts(segmented) {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", ac.Score, ac.Action, ac.Count)
	}

	_ = w.Flush()

	if len(result.Dropped) > 0 {
		_, _ = fmt.Fprintf(out, "\nDropped customers: %s\n", strings.Join(result.Dropped, ", "))
	}
}

func headRows[T any](rows []T, n int) []T {
	if n >= 0 && n < len(rows) {
		return rows[:n]
	}

	return rows
}
