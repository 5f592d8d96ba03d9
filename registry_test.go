/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dataapi

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/suparena/dataapi/config"
	"github.com/suparena/dataapi/errors"
	"github.com/suparena/dataapi/transport/mock"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	primary := New(mock.New(), testConfig)
	reports := New(mock.New(), testConfig)

	if err := r.Register("main", primary); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("reports", reports); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("duplicate", func(t *testing.T) {
		if err := r.Register("main", reports); !errors.IsValidationError(err) {
			t.Errorf("Expected duplicate error, got %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if err := r.Register("", primary); !errors.IsValidationError(err) {
			t.Errorf("Expected error for empty name, got %v", err)
		}
		if err := r.Register("nil", nil); !errors.IsValidationError(err) {
			t.Errorf("Expected error for nil client, got %v", err)
		}
	})

	t.Run("get", func(t *testing.T) {
		got, err := r.Get("reports")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != reports {
			t.Error("Expected the registered client")
		}
		if _, err := r.Get("missing"); !errors.IsValidationError(err) {
			t.Errorf("Expected not found error, got %v", err)
		}
	})

	t.Run("default", func(t *testing.T) {
		if _, err := r.Default(); err == nil {
			t.Error("Expected error without default")
		}
		if err := r.SetDefault("missing"); err == nil {
			t.Error("Expected error for unknown default")
		}
		if err := r.SetDefault("main"); err != nil {
			t.Fatalf("SetDefault failed: %v", err)
		}
		got, err := r.Default()
		if err != nil || got != primary {
			t.Errorf("Expected main as default, got %v, %v", got, err)
		}
	})

	t.Run("list and remove", func(t *testing.T) {
		if got := r.List(); !reflect.DeepEqual(got, []string{"main", "reports"}) {
			t.Errorf("Unexpected list %v", got)
		}
		if err := r.Remove("main"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if err := r.Remove("main"); err == nil {
			t.Error("Expected error removing twice")
		}
		if _, err := r.Default(); err == nil {
			t.Error("Expected default to be cleared")
		}
		if got := r.List(); !reflect.DeepEqual(got, []string{"reports"}) {
			t.Errorf("Unexpected list %v", got)
		}
	})
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			if err := r.Register(name, New(mock.New(), testConfig)); err != nil {
				t.Errorf("Register %s failed: %v", name, err)
			}
			if _, err := r.Get(name); err != nil {
				t.Errorf("Get %s failed: %v", name, err)
			}
			r.List()
		}(i)
	}
	wg.Wait()

	if n := len(r.List()); n != 20 {
		t.Errorf("Expected 20 clients, got %d", n)
	}
}

func TestOpenRegistry(t *testing.T) {
	file := &config.File{
		Default: "main",
		Databases: map[string]config.Config{
			"main":    testConfig,
			"reports": testConfig,
		},
	}
	r, err := OpenRegistry(context.Background(), file)
	if err != nil {
		t.Fatalf("OpenRegistry failed: %v", err)
	}
	if got := r.List(); !reflect.DeepEqual(got, []string{"main", "reports"}) {
		t.Errorf("Unexpected list %v", got)
	}
	c, err := r.Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if c.Config().Database != "app" {
		t.Errorf("Unexpected config %+v", c.Config())
	}

	t.Run("invalid database", func(t *testing.T) {
		bad := &config.File{Databases: map[string]config.Config{"bad": {Database: "x"}}}
		if _, err := OpenRegistry(context.Background(), bad); !errors.IsValidationError(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})
}
