// Package exporter serializes order collections back to the delimited
// format the dataset was loaded from, including the derived feature
// columns.
//
// Two surfaces are provided:
//
// WriteOrders streams CSV to any io.Writer and backs the dashboard's
// download endpoint.
//
// CSVWriter writes files on disk with an optional UTF-8 BOM for Excel
// compatibility, used by the cleanse CLI.
package exporter
