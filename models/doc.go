/*
Package models defines the data structures exchanged between application code and dataapi.

Key Types:

Params:
Placeholder values for a statement, keyed by placeholder name:

	params := models.Params{
	    "id":        42,
	    "name":      "apollo-contacts-export.csv",
	    "createdAt": time.Now(),
	    "meta":      map[string]any{"source": "upload"},
	}

Row:
A decoded record. Keys are column names rewritten from snake_case to camelCase:

	// created_at TIMESTAMP -> row["createdAt"] is a time.Time
	// data JSONB           -> row["data"] is a map[string]any
	// tags TEXT[]          -> row["tags"] is a []string

ExecOption:
Per-call settings passed through to the Data API:

	rows, err := client.Execute(ctx, sql, params,
	    models.WithTransactionID(txID),
	    models.WithSchema("reporting"),
	)

These types are created per call and never cached.
*/
package models
