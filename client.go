/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dataapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata/types"
	"github.com/aws/smithy-go"
	"github.com/cespare/xxhash"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/suparena/dataapi/codec"
	"github.com/suparena/dataapi/config"
	"github.com/suparena/dataapi/errors"
	"github.com/suparena/dataapi/models"
	"github.com/suparena/dataapi/transport"
)

// Executor runs parameterized statements. *Client implements it.
type Executor interface {
	Execute(ctx context.Context, sql string, params models.Params, opts ...models.ExecOption) ([]models.Row, error)

	Batch(ctx context.Context, sql string, rows []models.Params, opts ...models.ExecOption) error
}

var _ Executor = (*Client)(nil)

// Client sends statements for one database through a Transport.
// It is immutable after construction and safe for concurrent use when the
// transport is.
type Client struct {
	transport     transport.Transport
	cfg           config.Config
	log           *logrus.Entry
	encoder       codec.Encoder
	decoder       *codec.Decoder
	normalizeMode codec.NormalizeMode
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Statements are logged at Debug level.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithNormalizeMode selects how Batch fills in missing placeholder values.
func WithNormalizeMode(mode codec.NormalizeMode) Option {
	return func(c *Client) {
		c.normalizeMode = mode
	}
}

// WithEncoder replaces the parameter encoder.
func WithEncoder(enc codec.Encoder) Option {
	return func(c *Client) {
		c.encoder = enc
	}
}

// WithDecoder replaces the result decoder.
func WithDecoder(dec *codec.Decoder) Option {
	return func(c *Client) {
		c.decoder = dec
	}
}

// New creates a Client that sends statements for cfg through t.
func New(t transport.Transport, cfg config.Config, opts ...Option) *Client {
	c := &Client{
		transport:     t,
		cfg:           cfg,
		log:           logrus.StandardLogger().WithField("component", "dataapi"),
		decoder:       codec.NewDecoder(),
		normalizeMode: codec.NormalizeKeyPresence,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open validates cfg and creates a Client backed by the AWS SDK.
func Open(ctx context.Context, cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	rds, err := transport.NewRDSDataClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Data API client: %w", err)
	}
	return New(rds, cfg, opts...), nil
}

// Config returns the target the client was created for.
func (c *Client) Config() config.Config {
	return c.cfg
}

// Execute runs one statement and returns its decoded rows.
func (c *Client) Execute(ctx context.Context, sql string, params models.Params, opts ...models.ExecOption) ([]models.Row, error) {
	res, err := c.ExecuteResult(ctx, sql, params, opts...)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// ExecuteResult runs one statement and returns its rows together with the
// update count and generated fields.
func (c *Client) ExecuteResult(ctx context.Context, sql string, params models.Params, opts ...models.ExecOption) (*models.Result, error) {
	options := models.ApplyExecOptions(opts...)

	parameters, err := c.encoder.EncodeParams(params)
	if err != nil {
		return nil, err
	}

	in := &rdsdata.ExecuteStatementInput{
		ResourceArn:           aws.String(c.cfg.ResourceARN),
		SecretArn:             aws.String(c.cfg.SecretARN),
		Database:              c.database(),
		Schema:                c.schema(options),
		TransactionId:         optional(options.TransactionID),
		Sql:                   aws.String(sql),
		Parameters:            parameters,
		IncludeResultMetadata: true,
		ContinueAfterTimeout:  options.ContinueAfterTimeout,
	}

	log := c.callLogger(sql).WithField("params", len(parameters))
	start := time.Now()

	out, err := c.transport.ExecuteStatement(ctx, in)
	if err != nil {
		log.WithError(err).WithField("elapsed", time.Since(start)).Debug("statement failed")
		return nil, transportError("ExecuteStatement", err)
	}

	rows, err := c.decoder.Decode(out.ColumnMetadata, out.Records)
	if err != nil {
		return nil, err
	}
	generated, err := c.decoder.DecodeFields(out.GeneratedFields)
	if err != nil {
		return nil, fmt.Errorf("generated fields: %w", err)
	}

	log.WithFields(logrus.Fields{
		"rows":    len(rows),
		"updated": out.NumberOfRecordsUpdated,
		"elapsed": time.Since(start),
	}).Debug("statement executed")

	return &models.Result{
		Rows:            rows,
		RecordsUpdated:  out.NumberOfRecordsUpdated,
		GeneratedFields: generated,
	}, nil
}

// Batch runs sql once per row in a single batched call. Rows are normalized in
// place first so that every row carries every placeholder of sql.
func (c *Client) Batch(ctx context.Context, sql string, rows []models.Params, opts ...models.ExecOption) error {
	_, err := c.BatchExecute(ctx, sql, rows, opts...)
	return err
}

// BatchExecute is Batch returning the generated fields of each parameter set.
// Only placeholders referenced by sql are sent, in order of first occurrence,
// so every parameter set has the same length.
func (c *Client) BatchExecute(ctx context.Context, sql string, rows []models.Params, opts ...models.ExecOption) (*models.BatchResult, error) {
	options := models.ApplyExecOptions(opts...)

	names := codec.Normalize(sql, rows, c.normalizeMode)
	sets, err := c.encodeSets(names, rows)
	if err != nil {
		return nil, err
	}

	in := &rdsdata.BatchExecuteStatementInput{
		ResourceArn:   aws.String(c.cfg.ResourceARN),
		SecretArn:     aws.String(c.cfg.SecretARN),
		Database:      c.database(),
		Schema:        c.schema(options),
		TransactionId: optional(options.TransactionID),
		Sql:           aws.String(sql),
		ParameterSets: sets,
	}

	log := c.callLogger(sql).WithFields(logrus.Fields{
		"parameterSets": len(sets),
		"params":        len(names),
	})
	start := time.Now()

	out, err := c.transport.BatchExecuteStatement(ctx, in)
	if err != nil {
		log.WithError(err).WithField("elapsed", time.Since(start)).Debug("batch failed")
		return nil, transportError("BatchExecuteStatement", err)
	}

	result := &models.BatchResult{
		ParameterSets:   len(sets),
		GeneratedFields: make([][]any, 0, len(out.UpdateResults)),
	}
	for i, ur := range out.UpdateResults {
		fields, err := c.decoder.DecodeFields(ur.GeneratedFields)
		if err != nil {
			return nil, fmt.Errorf("update result %d: %w", i, err)
		}
		result.GeneratedFields = append(result.GeneratedFields, fields)
	}

	log.WithField("elapsed", time.Since(start)).Debug("batch executed")
	return result, nil
}

func (c *Client) encodeSets(names []string, rows []models.Params) ([][]types.SqlParameter, error) {
	sets := make([][]types.SqlParameter, 0, len(rows))
	for i, row := range rows {
		set := make([]types.SqlParameter, 0, len(names))
		for _, name := range names {
			v, ok := row[name]
			if !ok {
				return nil, errors.NewShapeMismatchDetail(fmt.Sprintf("parameter set %d", i), fmt.Sprintf("missing placeholder %q", name))
			}
			p, err := c.encoder.Encode(name, v)
			if err != nil {
				return nil, fmt.Errorf("parameter set %d: %w", i, err)
			}
			set = append(set, p)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// Ping runs SELECT version() and returns the server version string.
func (c *Client) Ping(ctx context.Context) (string, error) {
	rows, err := c.Execute(ctx, "SELECT version()", nil)
	if err != nil {
		return "", fmt.Errorf("ping failed: %w", err)
	}
	if len(rows) == 0 {
		return "", errors.NewShapeMismatchDetail("ping", "no rows returned")
	}
	version := fmt.Sprint(rows[0]["version"])
	c.log.WithFields(logrus.Fields{
		"database": c.cfg.Database,
		"version":  version,
	}).Info("Connected to database")
	return version, nil
}

func (c *Client) callLogger(sql string) *logrus.Entry {
	return c.log.WithFields(logrus.Fields{
		"requestId": uuid.NewString(),
		"statement": fmt.Sprintf("%016x", xxhash.Sum64String(sql)),
	})
}

func (c *Client) database() *string {
	return optional(c.cfg.Database)
}

func (c *Client) schema(options models.ExecOptions) *string {
	if options.Schema != "" {
		return aws.String(options.Schema)
	}
	return optional(c.cfg.Schema)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

// transportError wraps an RPC failure, keeping the original error reachable.
func transportError(op string, err error) error {
	var code string
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}
	return errors.NewTransportError(op, code, err)
}
