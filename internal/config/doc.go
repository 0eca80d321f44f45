// Package config loads and validates application configuration.
//
// Configuration is assembled from two sources, lowest precedence first:
//
//  1. An optional config.yaml file next to the binary.
//  2. Environment variables with the SALESDASH_ prefix, for example
//     SALESDASH_SERVER_PORT or SALESDASH_DATASET_PATH.
//
// Every field has a sensible default, so the server starts with no
// configuration at all as long as the dataset file exists. Load fails
// fast on invalid values rather than deferring errors to first use.
package config
