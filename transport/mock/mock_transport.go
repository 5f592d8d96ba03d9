/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a recording fake of transport.Transport for testing
package mock

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/rdsdata"
)

// Transport is a mock implementation of transport.Transport for testing
type Transport struct {
	mu           sync.RWMutex
	executeCalls []*rdsdata.ExecuteStatementInput
	batchCalls   []*rdsdata.BatchExecuteStatementInput
	executeFunc  func(ctx context.Context, in *rdsdata.ExecuteStatementInput) (*rdsdata.ExecuteStatementOutput, error)
	batchFunc    func(ctx context.Context, in *rdsdata.BatchExecuteStatementInput) (*rdsdata.BatchExecuteStatementOutput, error)
	executeError error
	batchError   error
}

// New creates a new mock Transport that returns empty outputs
func New() *Transport {
	return &Transport{}
}

// WithExecuteFunc sets a custom ExecuteStatement handler
func (m *Transport) WithExecuteFunc(f func(ctx context.Context, in *rdsdata.ExecuteStatementInput) (*rdsdata.ExecuteStatementOutput, error)) *Transport {
	m.executeFunc = f
	return m
}

// WithExecuteOutput makes every ExecuteStatement call return out
func (m *Transport) WithExecuteOutput(out *rdsdata.ExecuteStatementOutput) *Transport {
	return m.WithExecuteFunc(func(context.Context, *rdsdata.ExecuteStatementInput) (*rdsdata.ExecuteStatementOutput, error) {
		return out, nil
	})
}

// WithBatchFunc sets a custom BatchExecuteStatement handler
func (m *Transport) WithBatchFunc(f func(ctx context.Context, in *rdsdata.BatchExecuteStatementInput) (*rdsdata.BatchExecuteStatementOutput, error)) *Transport {
	m.batchFunc = f
	return m
}

// WithExecuteError makes ExecuteStatement calls return an error
func (m *Transport) WithExecuteError(err error) *Transport {
	m.executeError = err
	return m
}

// WithBatchError makes BatchExecuteStatement calls return an error
func (m *Transport) WithBatchError(err error) *Transport {
	m.batchError = err
	return m
}

// ExecuteStatement records the call and returns the configured output
func (m *Transport) ExecuteStatement(ctx context.Context, in *rdsdata.ExecuteStatementInput, optFns ...func(*rdsdata.Options)) (*rdsdata.ExecuteStatementOutput, error) {
	m.mu.Lock()
	m.executeCalls = append(m.executeCalls, in)
	m.mu.Unlock()

	if m.executeError != nil {
		return nil, m.executeError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.executeFunc != nil {
		return m.executeFunc(ctx, in)
	}
	return &rdsdata.ExecuteStatementOutput{}, nil
}

// BatchExecuteStatement records the call and returns the configured output
func (m *Transport) BatchExecuteStatement(ctx context.Context, in *rdsdata.BatchExecuteStatementInput, optFns ...func(*rdsdata.Options)) (*rdsdata.BatchExecuteStatementOutput, error) {
	m.mu.Lock()
	m.batchCalls = append(m.batchCalls, in)
	m.mu.Unlock()

	if m.batchError != nil {
		return nil, m.batchError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.batchFunc != nil {
		return m.batchFunc(ctx, in)
	}
	return &rdsdata.BatchExecuteStatementOutput{}, nil
}

// ExecuteCalls returns the inputs of every ExecuteStatement call so far
func (m *Transport) ExecuteCalls() []*rdsdata.ExecuteStatementInput {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*rdsdata.ExecuteStatementInput(nil), m.executeCalls...)
}

// BatchCalls returns the inputs of every BatchExecuteStatement call so far
func (m *Transport) BatchCalls() []*rdsdata.BatchExecuteStatementInput {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*rdsdata.BatchExecuteStatementInput(nil), m.batchCalls...)
}

// Reset clears recorded calls
func (m *Transport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executeCalls = nil
	m.batchCalls = nil
}
