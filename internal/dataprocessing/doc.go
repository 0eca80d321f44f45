// Package dataprocessing loads and cleans the raw order dataset.
//
// # Architecture
//
// The package is organized into two components:
//
// 1. Loader: reads a delimited text file (or an Excel workbook) into a raw
// table and verifies the required column set.
//
// 2. Pipeline: runs the cleaning passes over the raw table, in order:
// sentinel normalization, strict row elimination, type coercion,
// deduplication, feature derivation, and categorical normalization.
//
// # Usage
//
//	ds, report, err := dataprocessing.Load("data/orders.csv", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	slog.Info("dataset ready", "rows", ds.Len(), "dropped", report.Dropped())
//
// # Data flow
//
//	Source file → Loader → RawTable → Pipeline → domain.Dataset
//
// Rows that cannot survive cleaning are dropped, counted in the CleanReport,
// and never surfaced as errors. Only structural problems with the source
// (unreadable file, missing required columns) fail the load.
package dataprocessing
