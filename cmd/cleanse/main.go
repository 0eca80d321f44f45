// Command cleanse runs the order cleaning pipeline offline: it reads a
// raw CSV or Excel file, applies the same cleaning the server applies at
// load time, and writes the cleaned dataset with derived columns as CSV.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"salesdash/internal/dataprocessing"
	"salesdash/internal/exporter"
)

func main() {
	inPath := flag.String("in", "", "input file (.csv, .xlsx)")
	outPath := flag.String("out", "", "output CSV file")
	withBOM := flag.Bool("bom", false, "prefix the output with a UTF-8 BOM for Excel")
	summary := flag.Bool("summary", true, "print a cleaning summary")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	table, err := dataprocessing.ParseFile(*inPath)
	if err != nil {
		logger.Error("failed to read input", "path", *inPath, "error", err)
		os.Exit(1)
	}

	bar := progressbar.NewOptions(len(table.Rows),
		progressbar.OptionSetDescription("cleaning"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	ds, report := dataprocessing.Clean(table, &dataprocessing.CleanOptions{
		OnRow: func(processed, total int) {
			_ = bar.Set(processed)
		},
	})
	_ = bar.Finish()

	writer := &exporter.CSVWriter{BOMPrefix: *withBOM}
	if err := writer.WriteFile(*outPath, ds.Orders); err != nil {
		logger.Error("failed to write output", "path", *outPath, "error", err)
		os.Exit(1)
	}

	if *summary {
		fmt.Fprintf(os.Stderr, "rows in:            %d\n", report.RowsIn)
		fmt.Fprintf(os.Stderr, "rows out:           %d\n", report.RowsOut)
		fmt.Fprintf(os.Stderr, "missing dropped:    %d\n", report.MissingDropped)
		fmt.Fprintf(os.Stderr, "malformed dropped:  %d\n", report.MalformedDropped)
		fmt.Fprintf(os.Stderr, "duplicates dropped: %d\n", report.DuplicatesDropped)
		fmt.Fprintf(os.Stderr, "age out of range:   %d\n", report.AgeOutOfRange)
	}

	logger.Info("cleaning complete",
		"input", *inPath,
		"output", *outPath,
		"rows_out", report.RowsOut)
}
