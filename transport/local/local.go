/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package local

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata/types"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/suparena/dataapi/codec"
)

// TimestampLayout is the text form of time values returned by the emulator,
// matching what the Data API returns for PostgreSQL timestamps.
const TimestampLayout = "2006-01-02 15:04:05.999999"

// Transport answers Data API calls from a SQLite database.
type Transport struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, e.g. "file:dev.db" or ":memory:".
func Open(dsn string) (*Transport, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return New(db), nil
}

// New wraps an existing connection. The pool is limited to one connection so
// that in-memory databases are shared by every call.
func New(db *sqlx.DB) *Transport {
	db.SetMaxOpenConns(1)
	return &Transport{db: db}
}

// DB returns the underlying database.
func (t *Transport) DB() *sqlx.DB {
	return t.db
}

// Close closes the database.
func (t *Transport) Close() error {
	return t.db.Close()
}

// ExecuteStatement runs one statement. Statements that produce rows return
// ColumnMetadata and Records; others report the affected row count and, for
// INSERT, the new rowid as a generated field.
func (t *Transport) ExecuteStatement(ctx context.Context, in *rdsdata.ExecuteStatementInput, _ ...func(*rdsdata.Options)) (*rdsdata.ExecuteStatementOutput, error) {
	query := aws.ToString(in.Sql)
	args, err := bindArgs(query, in.Parameters)
	if err != nil {
		return nil, err
	}

	if returnsRows(query) {
		rows, err := t.db.QueryxContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return readRows(rows)
	}

	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := &rdsdata.ExecuteStatementOutput{}
	out.NumberOfRecordsUpdated, _ = res.RowsAffected()
	out.GeneratedFields = generatedFields(query, res)
	return out, nil
}

// BatchExecuteStatement runs the statement once per parameter set inside a
// single transaction. Any failure rolls back every set.
func (t *Transport) BatchExecuteStatement(ctx context.Context, in *rdsdata.BatchExecuteStatementInput, _ ...func(*rdsdata.Options)) (*rdsdata.BatchExecuteStatementOutput, error) {
	query := aws.ToString(in.Sql)

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	out := &rdsdata.BatchExecuteStatementOutput{
		UpdateResults: make([]types.UpdateResult, 0, len(in.ParameterSets)),
	}
	for i, set := range in.ParameterSets {
		args, err := bindArgs(query, set)
		if err != nil {
			return nil, fmt.Errorf("parameter set %d: %w", i, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("parameter set %d: %w", i, err)
		}
		out.UpdateResults = append(out.UpdateResults, types.UpdateResult{
			GeneratedFields: generatedFields(query, res),
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return out, nil
}

// bindArgs turns the parameters referenced by query into SQLite named arguments.
// Parameters the statement does not reference are dropped; referenced names
// without a parameter are an error, as they are for the Data API.
func bindArgs(query string, params []types.SqlParameter) ([]any, error) {
	byName := make(map[string]types.SqlParameter, len(params))
	for _, p := range params {
		byName[aws.ToString(p.Name)] = p
	}

	names := codec.Placeholders(query)
	args := make([]any, 0, len(names))
	for _, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("no value specified for parameter %q", name)
		}
		v, err := fieldValue(p.Value)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name, err)
		}
		args = append(args, sql.Named(name, v))
	}
	return args, nil
}

func fieldValue(f types.Field) (any, error) {
	switch v := f.(type) {
	case *types.FieldMemberIsNull:
		return nil, nil
	case *types.FieldMemberStringValue:
		return v.Value, nil
	case *types.FieldMemberLongValue:
		return v.Value, nil
	case *types.FieldMemberDoubleValue:
		return v.Value, nil
	case *types.FieldMemberBooleanValue:
		return v.Value, nil
	case *types.FieldMemberBlobValue:
		return v.Value, nil
	default:
		return nil, fmt.Errorf("unsupported parameter value %T", f)
	}
}

// returnsRows reports whether query is expected to produce a result set.
func returnsRows(query string) bool {
	switch firstKeyword(query) {
	case "SELECT", "WITH", "VALUES", "PRAGMA", "EXPLAIN":
		return true
	}
	return codec.HasKeyword(query, "RETURNING")
}

func firstKeyword(query string) string {
	s := strings.TrimSpace(query)
	for {
		switch {
		case strings.HasPrefix(s, "--"):
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				s = strings.TrimSpace(s[i+1:])
				continue
			}
			return ""
		case strings.HasPrefix(s, "/*"):
			if i := strings.Index(s, "*/"); i >= 0 {
				s = strings.TrimSpace(s[i+2:])
				continue
			}
			return ""
		case strings.HasPrefix(s, "("):
			s = strings.TrimSpace(s[1:])
			continue
		}
		break
	}
	end := strings.IndexFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z')
	})
	if end < 0 {
		end = len(s)
	}
	return strings.ToUpper(s[:end])
}

func generatedFields(query string, res sql.Result) []types.Field {
	if firstKeyword(query) != "INSERT" {
		return nil
	}
	id, err := res.LastInsertId()
	if err != nil || id == 0 {
		return nil
	}
	return []types.Field{&types.FieldMemberLongValue{Value: id}}
}

func readRows(rows *sqlx.Rows) (*rdsdata.ExecuteStatementOutput, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	var values [][]any
	for rows.Next() {
		row, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		values = append(values, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := &rdsdata.ExecuteStatementOutput{
		ColumnMetadata: make([]types.ColumnMetadata, len(colTypes)),
		Records:        make([][]types.Field, 0, len(values)),
	}
	for i, ct := range colTypes {
		out.ColumnMetadata[i] = types.ColumnMetadata{
			Name:     aws.String(ct.Name()),
			Label:    aws.String(ct.Name()),
			TypeName: aws.String(typeName(ct.DatabaseTypeName(), i, values)),
			Nullable: 1,
		}
	}
	for _, row := range values {
		record := make([]types.Field, len(row))
		for i, v := range row {
			record[i] = toField(v)
		}
		out.Records = append(out.Records, record)
	}
	return out, nil
}

// declaredTypes maps SQLite declared types to the PostgreSQL names the Data API reports.
var declaredTypes = map[string]string{
	"integer":  "int8",
	"int":      "int4",
	"bigint":   "int8",
	"real":     "float8",
	"double":   "float8",
	"float":    "float8",
	"blob":     "bytea",
	"boolean":  "bool",
	"datetime": "timestamp",
	"date":     "date",
}

// typeName reports the column type. Expression columns have no declared
// type, so the first non-null value of the column decides.
func typeName(declared string, col int, values [][]any) string {
	declared = strings.ToLower(declared)
	if declared != "" {
		if mapped, ok := declaredTypes[declared]; ok {
			return mapped
		}
		return declared
	}
	for _, row := range values {
		switch row[col].(type) {
		case int64:
			return "int8"
		case float64:
			return "float8"
		case bool:
			return "bool"
		case []byte:
			return "bytea"
		case string:
			return "text"
		case time.Time:
			return "timestamp"
		}
	}
	return "unknown"
}

func toField(v any) types.Field {
	switch x := v.(type) {
	case nil:
		return &types.FieldMemberIsNull{Value: true}
	case int64:
		return &types.FieldMemberLongValue{Value: x}
	case float64:
		return &types.FieldMemberDoubleValue{Value: x}
	case bool:
		return &types.FieldMemberBooleanValue{Value: x}
	case []byte:
		return &types.FieldMemberBlobValue{Value: x}
	case string:
		return &types.FieldMemberStringValue{Value: x}
	case time.Time:
		return &types.FieldMemberStringValue{Value: x.UTC().Format(TimestampLayout)}
	default:
		return &types.FieldMemberStringValue{Value: fmt.Sprint(x)}
	}
}
