package models

// ExecOptions carries per-call settings that are passed through to the Data API unchanged.
type ExecOptions struct {
	TransactionID        string // Transaction started outside this library (default: none)
	Schema               string // Overrides the configured schema (default: configured value)
	ContinueAfterTimeout bool   // Keep running DDL after the call times out (default: false)
}

// ExecOption is a functional option for a single Execute or Batch call
type ExecOption func(*ExecOptions)

// DefaultExecOptions returns default per-call options
func DefaultExecOptions() ExecOptions {
	return ExecOptions{}
}

// ApplyExecOptions folds the given options over the defaults
func ApplyExecOptions(opts ...ExecOption) ExecOptions {
	options := DefaultExecOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// WithTransactionID runs the statement inside an existing Data API transaction
func WithTransactionID(id string) ExecOption {
	return func(opts *ExecOptions) {
		opts.TransactionID = id
	}
}

// WithSchema sets the schema for this call
func WithSchema(schema string) ExecOption {
	return func(opts *ExecOptions) {
		opts.Schema = schema
	}
}

// WithContinueAfterTimeout asks the database to keep running the statement after the call times out
func WithContinueAfterTimeout() ExecOption {
	return func(opts *ExecOptions) {
		opts.ContinueAfterTimeout = true
	}
}
