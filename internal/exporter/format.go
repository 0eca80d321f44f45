package exporter

import (
	"fmt"
	"strconv"
)

// orderDateFormat is the timestamp layout written to exported files. It is
// also one of the loader's accepted layouts, so an exported file reloads
// cleanly.
const orderDateFormat = "2006-01-02 15:04:05"

// formatFloat renders a numeric cell without a fixed precision so values
// like integral quantities round-trip unchanged.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value for CSV output.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
