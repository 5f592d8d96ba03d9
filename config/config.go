/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/dataapi/errors"
)

// Environment variables read by FromEnv.
const (
	EnvResourceARN = "DATA_API_ARN"
	EnvSecretARN   = "DATA_API_SECRET_ARN"
	EnvDatabase    = "DATA_API_DATABASE"
	EnvSchema      = "DATA_API_SCHEMA"
	EnvEndpoint    = "DATA_API_ENDPOINT"
)

// Config identifies one Data API target and the credentials used to reach it.
type Config struct {
	ResourceARN     string `yaml:"resourceArn"`
	SecretARN       string `yaml:"secretArn"`
	Database        string `yaml:"database"`
	Schema          string `yaml:"schema,omitempty"`
	Region          string `yaml:"region,omitempty"`
	AccessKeyID     string `yaml:"accessKeyId,omitempty"`
	SecretAccessKey string `yaml:"secretAccessKey,omitempty"`
	// Endpoint overrides the service URL, e.g. for a local Data API proxy.
	Endpoint string `yaml:"endpoint,omitempty"`
}

// File is the YAML layout holding several named targets.
//
//	default: main
//	databases:
//	  main:
//	    resourceArn: arn:aws:rds:us-east-1:123456789012:cluster:main
//	    secretArn: ${MAIN_SECRET_ARN}
//	    database: app
type File struct {
	Default   string            `yaml:"default,omitempty"`
	Databases map[string]Config `yaml:"databases"`
}

// FromEnv builds a Config from the process environment.
func FromEnv() Config {
	return Config{
		ResourceARN:     os.Getenv(EnvResourceARN),
		SecretARN:       os.Getenv(EnvSecretARN),
		Database:        os.Getenv(EnvDatabase),
		Schema:          os.Getenv(EnvSchema),
		Endpoint:        os.Getenv(EnvEndpoint),
		Region:          firstEnv("AWS_REGION", "REGION"),
		AccessKeyID:     firstEnv("ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID"),
		SecretAccessKey: firstEnv("SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY"),
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// LoadEnv loads .env style files into the environment without overriding
// variables that are already set. With no arguments it loads ".env".
// Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// LoadFile reads a YAML config file. ${VAR} references are expanded from the
// environment before parsing.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &f); err != nil {
		return nil, errors.NewValidationError("config", fmt.Sprintf("invalid YAML: %v", err))
	}
	if len(f.Databases) == 0 {
		return nil, errors.NewValidationError("databases", "at least one database is required")
	}
	if f.Default != "" {
		if _, ok := f.Databases[f.Default]; !ok {
			return nil, errors.NewValidationError("default", fmt.Sprintf("unknown database %q", f.Default))
		}
	}
	return &f, nil
}

// Names returns the configured database names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Databases))
	for name := range f.Databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named target. An empty name selects the default, or the
// only database when there is exactly one.
func (f *File) Lookup(name string) (Config, error) {
	if name == "" {
		name = f.Default
	}
	if name == "" && len(f.Databases) == 1 {
		for only := range f.Databases {
			name = only
		}
	}
	if name == "" {
		return Config{}, errors.NewValidationError("default", "no database selected and no default set")
	}
	cfg, ok := f.Databases[name]
	if !ok {
		return Config{}, errors.NewValidationError("database", fmt.Sprintf("unknown database %q", name))
	}
	return cfg, nil
}

// Validate checks that the resource and secret ARNs are well formed and a database is set.
func (c Config) Validate() error {
	if c.ResourceARN == "" {
		return errors.NewValidationError("resourceArn", "is required")
	}
	res, err := arn.Parse(c.ResourceARN)
	if err != nil {
		return errors.NewValidationError("resourceArn", err.Error())
	}
	if res.Service != "rds" {
		return errors.NewValidationError("resourceArn", fmt.Sprintf("expected an rds ARN, got service %q", res.Service))
	}

	if c.SecretARN == "" {
		return errors.NewValidationError("secretArn", "is required")
	}
	sec, err := arn.Parse(c.SecretARN)
	if err != nil {
		return errors.NewValidationError("secretArn", err.Error())
	}
	if sec.Service != "secretsmanager" {
		return errors.NewValidationError("secretArn", fmt.Sprintf("expected a secretsmanager ARN, got service %q", sec.Service))
	}

	if c.Database == "" {
		return errors.NewValidationError("database", "is required")
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return errors.NewValidationError("accessKeyId", "access key id and secret access key must be set together")
	}
	return nil
}

// ResolvedRegion returns Region, falling back to the region of the resource ARN.
func (c Config) ResolvedRegion() string {
	if c.Region != "" {
		return c.Region
	}
	if res, err := arn.Parse(c.ResourceARN); err == nil {
		return res.Region
	}
	return ""
}
