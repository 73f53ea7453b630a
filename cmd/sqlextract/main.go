package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tobiasmeyer/sqlextract/internal/compare"
	"github.com/tobiasmeyer/sqlextract/internal/config"
	"github.com/tobiasmeyer/sqlextract/internal/extract"
	"github.com/tobiasmeyer/sqlextract/internal/logger"
	"github.com/tobiasmeyer/sqlextract/internal/scanner"
	"github.com/tobiasmeyer/sqlextract/internal/schema"
	"github.com/tobiasmeyer/sqlextract/internal/source/mysql"
	"github.com/tobiasmeyer/sqlextract/internal/writer"
	"github.com/tobiasmeyer/sqlextract/pkg/types"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "sqlextract error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		printUsage()
		return nil
	}

	switch args[1] {
	case "extract":
		return runExtract(args[2:])
	case "verify":
		return runVerify(args[2:])
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml")
	file := fs.String("file", "", "Path to the SQL dump (instead of --config)")
	out := fs.String("out", config.DefaultOutputDir, "Output directory")
	pretty := fs.Bool("pretty", true, "Indent output JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := resolveConfig(*configPath, *file, *out, *pretty)
	if err != nil {
		return err
	}

	log := logger.New()

	var tables []types.TableExtraction
	switch cfg.Source.Type {
	case config.SourceDump:
		data, err := os.ReadFile(cfg.Source.Path)
		if err != nil {
			return fmt.Errorf("read dump: %w", err)
		}
		log.Info().Str("file", cfg.Source.Path).Msg("parsing dump")
		tables = extract.New(log).Run(string(data))
	case config.SourceMySQL:
		ext, err := mysql.NewExtractor(cfg.Source.DSN, cfg.Source.Schema)
		if err != nil {
			return err
		}
		defer ext.Close()
		tables, err = ext.ExtractAll(context.Background(), cfg.Tables)
		if err != nil {
			return err
		}
	}
	tables = filterTables(tables, cfg.Tables)

	summary, err := writer.New(cfg.Output.Dir, cfg.Pretty(), log).WriteAll(tables)
	if err != nil {
		return err
	}

	fmt.Printf("Extracted %d tables (%d rows) to %s\n", summary.TotalTables, summary.TotalRows, cfg.Output.Dir)
	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml")
	file := fs.String("file", "", "Path to the SQL dump")
	dsn := fs.String("dsn", "", "MySQL DSN")
	dbSchema := fs.String("schema", "", "MySQL schema name")

	if err := fs.Parse(args); err != nil {
		return err
	}
	dumpPath, dbDSN, dbName, err := resolveVerify(*configPath, *file, *dsn, *dbSchema)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(dumpPath)
	if err != nil {
		return fmt.Errorf("read dump: %w", err)
	}

	var dumpSchemas []*schema.TableSchema
	for _, stmt := range scanner.Statements(string(data)) {
		if ts, ok := schema.ParseCreateTable(stmt); ok {
			dumpSchemas = append(dumpSchemas, ts)
		}
	}

	ext, err := mysql.NewExtractor(dbDSN, dbName)
	if err != nil {
		return err
	}
	defer ext.Close()

	ctx := context.Background()
	names, err := ext.TableNames(ctx)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	live := make(map[string][]string, len(names))
	for _, name := range names {
		cols, err := ext.Columns(ctx, name)
		if err != nil {
			return fmt.Errorf("fetch columns for %s: %w", name, err)
		}
		live[name] = cols
	}

	report := compare.Compare(dumpSchemas, live)
	if report.Clean() {
		fmt.Println("Dump matches database schema")
		return nil
	}
	for _, iss := range report.Issues {
		if iss.Column != "" {
			fmt.Printf("[%s] %s.%s: %s\n", iss.Severity, iss.Table, iss.Column, iss.Message)
		} else {
			fmt.Printf("[%s] %s: %s\n", iss.Severity, iss.Table, iss.Message)
		}
	}
	return nil
}

// resolveVerify merges the verify flags with an optional config file.
// Explicit flags win; the config supplies whatever is left unset.
func resolveVerify(configPath, file, dsn, dbSchema string) (string, string, string, error) {
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return "", "", "", err
		}
		if file == "" {
			file = cfg.Source.Path
		}
		if dsn == "" {
			dsn = cfg.Source.DSN
		}
		if dbSchema == "" {
			dbSchema = cfg.Source.Schema
		}
	}
	if file == "" || dsn == "" || dbSchema == "" {
		return "", "", "", fmt.Errorf("verify requires a dump path, DSN and schema (via --file/--dsn/--schema or --config)")
	}
	return file, dsn, dbSchema, nil
}

func resolveConfig(configPath, file, out string, pretty bool) (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfig(configPath)
	}
	if file == "" {
		return nil, fmt.Errorf("missing required flag: --config or --file")
	}
	return &config.Config{
		Source: config.SourceConfig{Type: config.SourceDump, Path: file},
		Output: config.OutputConfig{Dir: out, Pretty: &pretty},
	}, nil
}

func filterTables(tables []types.TableExtraction, keep []string) []types.TableExtraction {
	if len(keep) == 0 {
		return tables
	}
	want := make(map[string]bool, len(keep))
	for _, name := range keep {
		want[name] = true
	}
	var out []types.TableExtraction
	for _, t := range tables {
		if want[t.TableName] {
			out = append(out, t)
		}
	}
	return out
}

func printUsage() {
	fmt.Print(`sqlextract - SQL dump to JSON extraction tool

Usage:
  sqlextract extract --config <path>
  sqlextract extract --file <dump.sql> [--out <dir>] [--pretty]
  sqlextract verify --config <path>
  sqlextract verify --file <dump.sql> --dsn <dsn> --schema <name>

Commands:
  extract   Parse a dump (or a live MySQL schema) into per-table JSON files
  verify    Compare a dump's declared schemas against a live MySQL database
  help      Show this help message
`)
}
