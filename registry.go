/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dataapi

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/dataapi/config"
	"github.com/suparena/dataapi/errors"
)

// Registry is a thread-safe collection of Clients keyed by database name.
type Registry struct {
	mu          sync.RWMutex
	clients     map[string]*Client
	defaultName string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]*Client),
	}
}

// OpenRegistry opens a Client for every database in file. The file's default
// database becomes the registry default.
func OpenRegistry(ctx context.Context, file *config.File, opts ...Option) (*Registry, error) {
	r := NewRegistry()
	for _, name := range file.Names() {
		client, err := Open(ctx, file.Databases[name], opts...)
		if err != nil {
			return nil, fmt.Errorf("database %q: %w", name, err)
		}
		if err := r.Register(name, client); err != nil {
			return nil, err
		}
	}
	if file.Default != "" {
		if err := r.SetDefault(file.Default); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a client under name
func (r *Registry) Register(name string, c *Client) error {
	if name == "" {
		return errors.NewValidationError("name", "must not be empty")
	}
	if c == nil {
		return errors.NewValidationError("client", "must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[name]; exists {
		return fmt.Errorf("client %q already registered: %w", name, errors.ErrInvalidInput)
	}
	r.clients[name] = c
	return nil
}

// Get retrieves a client by name. An empty name returns the default client.
func (r *Registry) Get(name string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaultName
	}
	c, exists := r.clients[name]
	if !exists {
		return nil, fmt.Errorf("client %q not found: %w", name, errors.ErrInvalidInput)
	}
	return c, nil
}

// Default returns the default client
func (r *Registry) Default() (*Client, error) {
	return r.Get("")
}

// SetDefault makes the named, already registered client the default
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[name]; !exists {
		return fmt.Errorf("client %q not found: %w", name, errors.ErrInvalidInput)
	}
	r.defaultName = name
	return nil
}

// Remove deletes a client by name
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[name]; !exists {
		return fmt.Errorf("client %q not found: %w", name, errors.ErrInvalidInput)
	}
	delete(r.clients, name)
	if r.defaultName == name {
		r.defaultName = ""
	}
	return nil
}

// List returns all registered names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
