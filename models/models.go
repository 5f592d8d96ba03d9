/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package models

// Row is one decoded result record keyed by the camelCase form of each column name.
type Row map[string]any

// Params maps placeholder names (without the leading colon) to native values.
type Params map[string]any

// Result is the decoded outcome of a single statement.
type Result struct {
	// Rows holds one entry per returned record, in the order the database returned them.
	Rows []Row
	// RecordsUpdated is the number of rows changed by an INSERT, UPDATE or DELETE.
	RecordsUpdated int64
	// GeneratedFields holds values generated by the database, such as serial keys.
	GeneratedFields []any
}

// BatchResult is the decoded outcome of a batched statement.
type BatchResult struct {
	// ParameterSets is the number of parameter sets submitted.
	ParameterSets int
	// GeneratedFields holds the generated values per parameter set, aligned with the input rows.
	GeneratedFields [][]any
}
