package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/suparena/dataapi"
	"github.com/suparena/dataapi/config"
	"github.com/suparena/dataapi/models"
	"github.com/suparena/dataapi/transport/local"
)

var (
	sqlFlag      = flag.String("sql", "", "SQL statement with :name placeholders")
	paramsFlag   = flag.String("params", "", "JSON object of parameter values")
	batchFlag    = flag.String("batch", "", "File holding a JSON array of parameter objects; runs -sql as a batch")
	configFlag   = flag.String("config", "", "YAML file of named databases (default: environment)")
	envFlag      = flag.String("env", ".env", "Dotenv file loaded before reading the environment")
	dbFlag       = flag.String("db", "", "Database name in -config (default: the file's default)")
	localFlag    = flag.String("local", "", "SQLite DSN; run against a local emulator instead of AWS")
	pingFlag     = flag.Bool("ping", false, "Run SELECT version() and print the result")
	logLevelFlag = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := dataapi.GetVersionInfo()
		fmt.Printf("dataapi version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(*logLevelFlag)
	if err != nil {
		log.Fatalf("invalid -log-level: %v", err)
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logrus.NewEntry(log)); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, log *logrus.Entry) error {
	client, cleanup, err := openClient(ctx, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if *pingFlag {
		version, err := client.Ping(ctx)
		if err != nil {
			return err
		}
		fmt.Println(version)
		return nil
	}

	if *sqlFlag == "" {
		flag.Usage()
		return fmt.Errorf("-sql is required")
	}

	if *batchFlag != "" {
		rows, err := readBatch(*batchFlag)
		if err != nil {
			return err
		}
		res, err := client.BatchExecute(ctx, *sqlFlag, rows)
		if err != nil {
			return err
		}
		return printJSON(res)
	}

	params, err := parseParams(*paramsFlag)
	if err != nil {
		return err
	}
	res, err := client.ExecuteResult(ctx, *sqlFlag, params)
	if err != nil {
		return err
	}
	if len(res.Rows) == 0 && res.RecordsUpdated > 0 {
		return printJSON(res)
	}
	return printJSON(res.Rows)
}

func openClient(ctx context.Context, log *logrus.Entry) (*dataapi.Client, func(), error) {
	opts := []dataapi.Option{dataapi.WithLogger(log)}

	if *localFlag != "" {
		tr, err := local.Open(*localFlag)
		if err != nil {
			return nil, nil, err
		}
		return dataapi.New(tr, config.Config{Database: "local"}, opts...), func() { tr.Close() }, nil
	}

	if err := config.LoadEnv(*envFlag); err != nil {
		return nil, nil, err
	}

	cfg := config.FromEnv()
	if *configFlag != "" {
		file, err := config.LoadFile(*configFlag)
		if err != nil {
			return nil, nil, err
		}
		if cfg, err = file.Lookup(*dbFlag); err != nil {
			return nil, nil, err
		}
	}

	client, err := dataapi.Open(ctx, cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, func() {}, nil
}

// decodeJSON keeps numbers as json.Number so integers are sent as longValue.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func parseParams(s string) (models.Params, error) {
	if s == "" {
		return nil, nil
	}
	var params models.Params
	if err := decodeJSON([]byte(s), &params); err != nil {
		return nil, fmt.Errorf("invalid -params: %w", err)
	}
	return params, nil
}

func readBatch(path string) ([]models.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	var rows []models.Params
	if err := decodeJSON(data, &rows); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}
	return rows, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
