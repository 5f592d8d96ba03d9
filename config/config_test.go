/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/suparena/dataapi/errors"
)

const (
	testResourceARN = "arn:aws:rds:eu-west-1:123456789012:cluster:app"
	testSecretARN   = "arn:aws:secretsmanager:eu-west-1:123456789012:secret:app-db-AbCdEf"
)

func validConfig() Config {
	return Config{
		ResourceARN: testResourceARN,
		SecretARN:   testSecretARN,
		Database:    "app",
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvResourceARN, testResourceARN)
	t.Setenv(EnvSecretARN, testSecretARN)
	t.Setenv(EnvDatabase, "app")
	t.Setenv(EnvSchema, "public")
	t.Setenv(EnvEndpoint, "http://localhost:8080")
	t.Setenv("AWS_REGION", "")
	t.Setenv("REGION", "us-east-2")
	t.Setenv("ACCESS_KEY_ID", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("SECRET_ACCESS_KEY", "secret")

	want := Config{
		ResourceARN:     testResourceARN,
		SecretARN:       testSecretARN,
		Database:        "app",
		Schema:          "public",
		Region:          "us-east-2",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		Endpoint:        "http://localhost:8080",
	}
	if got := FromEnv(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("DATA_API_DATABASE=fromfile\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("missing file is skipped", func(t *testing.T) {
		if err := LoadEnv(filepath.Join(dir, "missing.env")); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("does not override", func(t *testing.T) {
		t.Setenv(EnvDatabase, "preset")
		if err := LoadEnv(path); err != nil {
			t.Fatalf("LoadEnv failed: %v", err)
		}
		if got := os.Getenv(EnvDatabase); got != "preset" {
			t.Errorf("Expected preset, got %s", got)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing resource", func(c *Config) { c.ResourceARN = "" }, true},
		{"malformed resource", func(c *Config) { c.ResourceARN = "cluster-app" }, true},
		{"wrong resource service", func(c *Config) { c.ResourceARN = testSecretARN }, true},
		{"missing secret", func(c *Config) { c.SecretARN = "" }, true},
		{"wrong secret service", func(c *Config) { c.SecretARN = testResourceARN }, true},
		{"missing database", func(c *Config) { c.Database = "" }, true},
		{"half credentials", func(c *Config) { c.AccessKeyID = "AKIAEXAMPLE" }, true},
		{"full credentials", func(c *Config) { c.AccessKeyID = "AKIAEXAMPLE"; c.SecretAccessKey = "s" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsValidationError(err) {
				t.Errorf("Expected validation error, got %T", err)
			}
		})
	}
}

func TestResolvedRegion(t *testing.T) {
	cfg := validConfig()
	if got := cfg.ResolvedRegion(); got != "eu-west-1" {
		t.Errorf("Expected region from ARN, got %q", got)
	}
	cfg.Region = "us-west-2"
	if got := cfg.ResolvedRegion(); got != "us-west-2" {
		t.Errorf("Expected explicit region, got %q", got)
	}
	if got := (Config{ResourceARN: "bad"}).ResolvedRegion(); got != "" {
		t.Errorf("Expected empty region, got %q", got)
	}
}

func TestParse(t *testing.T) {
	t.Setenv("TEST_SECRET_ARN", testSecretARN)
	data := []byte(`
default: main
databases:
  main:
    resourceArn: ` + testResourceARN + `
    secretArn: ${TEST_SECRET_ARN}
    database: app
  reporting:
    resourceArn: ` + testResourceARN + `
    secretArn: ${TEST_SECRET_ARN}
    database: reports
    schema: analytics
`)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(f.Names(), []string{"main", "reporting"}) {
		t.Errorf("Unexpected names %v", f.Names())
	}

	def, err := f.Lookup("")
	if err != nil {
		t.Fatalf("Lookup default failed: %v", err)
	}
	if def.Database != "app" || def.SecretARN != testSecretARN {
		t.Errorf("Unexpected default config %+v", def)
	}

	rep, err := f.Lookup("reporting")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rep.Schema != "analytics" {
		t.Errorf("Expected schema analytics, got %q", rep.Schema)
	}

	if _, err := f.Lookup("missing"); !errors.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"invalid yaml":    "databases: [",
		"no databases":    "default: main\n",
		"unknown default": "default: other\ndatabases:\n  main:\n    database: app\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); !errors.IsValidationError(err) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestLookupSingleDatabase(t *testing.T) {
	f := &File{Databases: map[string]Config{"only": validConfig()}}
	cfg, err := f.Lookup("")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if cfg.Database != "app" {
		t.Errorf("Unexpected config %+v", cfg)
	}

	f.Databases["second"] = validConfig()
	if _, err := f.Lookup(""); !errors.IsValidationError(err) {
		t.Errorf("Expected validation error without default, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
