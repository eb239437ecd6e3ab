// Package forecast indexes official economic forecasts by edition, metric and year,
// and compares two editions of the same metric.
//
// The core functionalities include:
//   - Metrics: a closed set of tracked indicators (CPI, RPI, CPIH, average earnings,
//     mortgage interest, rent and house prices). Any other name is an error, never
//     a silently missing value.
//   - Tables: the values published by one edition, with O(1) lookup by metric and
//     year. A missing value is absent, which is distinct from a recorded zero.
//   - Stores and sources: a Store loads an edition's table from an ordered list of
//     sources, such as a directory of JSONL files or the OBR workbook extractor in
//     package obr.
//   - Forecasts: read-only accessors offering single values, series, and the
//     comparison of two editions over the years they both cover.
//
// This package serves as the foundational logic for the `fcs` command-line tool.
package forecast
