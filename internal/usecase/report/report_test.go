package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OGN3N/orderbook/pkg/latency"
)

func sampleRows() []Row {
	return []Row{
		{
			Variant:   "treemap",
			Scenario:  "uniform",
			Operation: "limit",
			Samples:   6000,
			Percentiles: latency.Percentiles{
				Min:   100 * time.Nanosecond,
				Max:   9 * time.Microsecond,
				Mean:  400 * time.Nanosecond,
				P50:   300 * time.Nanosecond,
				P95:   800 * time.Nanosecond,
				P99:   2 * time.Microsecond,
				P999:  5 * time.Microsecond,
				P9999: 8 * time.Microsecond,
			},
		},
		{
			Variant:   "scan",
			Scenario:  "uniform",
			Operation: "cancel",
			Samples:   2000,
			Percentiles: latency.Percentiles{
				Min: 50 * time.Nanosecond,
				Max: time.Microsecond,
				P50: 200 * time.Nanosecond,
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{
		"treemap", "uniform", "limit", "6000",
		"100", "400", "300", "800", "2000", "5000", "8000", "9000",
	}, records[1])
	assert.Equal(t, "scan", records[2][0])
	assert.Equal(t, "50", records[2][4])
}

func TestWriteCSV_EmptyRowsStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "VARIANT")
	assert.Contains(t, out, "treemap")
	assert.Contains(t, out, "uniform")
	assert.Contains(t, out, "limit")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)
}

func TestNewRunID_Unique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 26)
}
