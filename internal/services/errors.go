package services

import "errors"

var (
	// ErrNoData signals that the current filter selection matched no records
	ErrNoData = errors.New("no records match the current filter selection")

	// ErrUnknownChart signals a request for a chart name that does not exist
	ErrUnknownChart = errors.New("unknown chart")
)
