package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"riskstat/adapters/ingest"
	"riskstat/domain/core"
	"riskstat/domain/sample"
	"riskstat/stats/descriptive"
	"riskstat/stats/profiling"
	"riskstat/stats/risk"
)

// Offline column analysis: reads one column of a CSV/XLSX file and prints
// statistics, distribution profile and period risk comparison as JSON.
func main() {
	var (
		column  = flag.String("column", "", "column header to analyze (required)")
		mode    = flag.String("mode", "population", "variance mode: population or sample")
		sheet   = flag.String("sheet", "Sheet1", "worksheet for .xlsx input")
		maxRows = flag.Int("max-rows", 100000, "maximum data rows to read")
	)
	flag.Parse()

	if flag.NArg() != 1 || *column == "" {
		fmt.Fprintln(os.Stderr, "usage: riskstat-cli -column <header> [-mode population|sample] <file.csv|file.xlsx>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	varianceMode, err := sample.ParseVarianceMode(*mode)
	if err != nil {
		fatal(err)
	}

	reader := ingest.NewDataReader(ingest.WithSheet(*sheet), ingest.WithMaxRows(*maxRows))
	col, err := reader.ReadColumn(context.Background(), path, core.ColumnKey(*column))
	if err != nil {
		fatal(err)
	}

	calc := descriptive.NewCalculator()
	result, err := calc.Compute(col.Values, varianceMode)
	if err != nil {
		fatal(err)
	}
	summary, err := calc.Summary(col.Values, varianceMode)
	if err != nil {
		fatal(err)
	}

	out := map[string]interface{}{
		"column":     col.Key,
		"skipped":    col.Skipped,
		"statistics": result,
		"summary":    summary,
	}

	if profile, err := profiling.NewDistributionAnalyzer().Profile(col.Values); err == nil {
		out["profile"] = profile
	}
	if analyzer, err := risk.NewAnalyzer(col.Values); err == nil {
		if cmp, err := analyzer.ComparePeriods(); err == nil {
			out["risk"] = cmp
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
