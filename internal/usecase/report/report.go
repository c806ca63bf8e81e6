// Package report renders benchmark results as CSV and as an aligned text
// comparison table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/OGN3N/orderbook/pkg/latency"
)

// Row is one variant/scenario/operation measurement.
type Row struct {
	Variant     string              `json:"variant"`
	Scenario    string              `json:"scenario"`
	Operation   string              `json:"operation"`
	Samples     int                 `json:"samples"`
	Percentiles latency.Percentiles `json:"percentiles"`
}

// RunSummary is a complete benchmark run, identified by a ULID so downstream
// consumers can correlate exported CSVs, published messages and logs.
type RunSummary struct {
	RunID      string    `json:"runID"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Rows       []Row     `json:"rows"`
}

// NewRunID returns a fresh ULID string.
func NewRunID() string {
	return ulid.Make().String()
}

var csvHeader = []string{
	"variant", "scenario", "operation", "samples",
	"min_ns", "mean_ns", "p50_ns", "p95_ns", "p99_ns", "p999_ns", "p9999_ns", "max_ns",
}

// WriteCSV writes one record per row with nanosecond columns.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		p := row.Percentiles
		record := []string{
			row.Variant,
			row.Scenario,
			row.Operation,
			strconv.Itoa(row.Samples),
			strconv.FormatInt(p.Min.Nanoseconds(), 10),
			strconv.FormatInt(p.Mean.Nanoseconds(), 10),
			strconv.FormatInt(p.P50.Nanoseconds(), 10),
			strconv.FormatInt(p.P95.Nanoseconds(), 10),
			strconv.FormatInt(p.P99.Nanoseconds(), 10),
			strconv.FormatInt(p.P999.Nanoseconds(), 10),
			strconv.FormatInt(p.P9999.Nanoseconds(), 10),
			strconv.FormatInt(p.Max.Nanoseconds(), 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes an aligned comparison table for terminal output.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tSCENARIO\tOP\tSAMPLES\tP50\tP95\tP99\tP99.9\tMAX")
	for _, row := range rows {
		p := row.Percentiles
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Variant, row.Scenario, row.Operation, row.Samples,
			p.P50, p.P95, p.P99, p.P999, p.Max,
		)
	}
	return tw.Flush()
}
