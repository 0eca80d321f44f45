// Package services contains the business logic layer between the HTTP
// transport and the data packages.
//
// DashboardService is the single entry point for dashboard work: it
// loads and caches the cleaned dataset, resolves partial filter inputs
// to concrete selections, computes chart tables, and streams CSV
// exports. Handlers stay thin and never touch the data packages
// directly.
package services
