/*
Package dataapi runs parameterized SQL against Aurora through the AWS RDS Data API
and returns native Go values instead of the API's tagged field values.

The library covers three translations:
  - Native parameter values to Data API SqlParameters (package codec)
  - Result records to rows keyed by camelCase column names, with timestamps,
    JSON documents and arrays converted to Go types
  - Batch rows with differing keys to uniform parameter sets

Key Features:
  - Explicit construction; no package-level client
  - Typed scanning of rows into structs with Select and ScanRows
  - A Registry of clients for several databases
  - Semantic error types (package errors)
  - A recording mock transport and a SQLite-backed local transport for tests

Basic Usage:

	cfg := config.FromEnv()
	client, err := dataapi.Open(ctx, cfg)
	if err != nil {
	    log.Fatal(err)
	}

	rows, err := client.Execute(ctx,
	    "SELECT id, file_name, created_at FROM uploads WHERE owner = :owner",
	    models.Params{"owner": "ops"})
	// rows[0]["fileName"], rows[0]["createdAt"].(time.Time)

	err = client.Batch(ctx,
	    "INSERT INTO uploads (owner, file_name) VALUES (:owner, :fileName)",
	    []models.Params{{"owner": "ops", "fileName": "a.csv"}, {"owner": "ops"}})

	type Upload struct {
	    ID        int64     `json:"id"`
	    FileName  string    `json:"fileName"`
	    CreatedAt time.Time `json:"createdAt"`
	}
	uploads, err := dataapi.Select[Upload](ctx, client, "SELECT * FROM uploads", nil)

For offline development, back the client with SQLite:

	tr, _ := local.Open("file:dev.db")
	client := dataapi.New(tr, config.Config{})
*/
package dataapi
