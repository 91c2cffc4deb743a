package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wildfunctions/onemax_sweep/pkg/engine"
	"github.com/wildfunctions/onemax_sweep/pkg/storage"
	"github.com/wildfunctions/onemax_sweep/pkg/strategy"
)

func main() {
	cfg := engine.DefaultConfig()
	configPath := ""
	storeKind := ""
	dbPath := "sweeps.db"
	listReports := false
	showID := ""

	// The config file is applied before the remaining flags so flags win.
	if path := findConfigFlag(os.Args[1:]); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	flag.StringVar(&configPath, "config", configPath, "YAML config file")
	flag.IntVar(&cfg.Runs, "runs", cfg.Runs, "trials per grid cell")
	flag.IntVar(&cfg.Generations, "generations", cfg.Generations, "generation cap per trial")
	flag.IntVar(&cfg.Population, "population", cfg.Population, "population size")
	flag.IntVar(&cfg.GenomeLength, "length", cfg.GenomeLength, "genome length in bits")
	flag.StringVar(&cfg.Selection, "selection", cfg.Selection, "parent selection ("+strings.Join(strategy.Names(), ", ")+")")
	flag.Float64Var(&cfg.TargetGenerationFitness, "target-generation", cfg.TargetGenerationFitness, "mean fitness that stops a trial early")
	flag.Float64Var(&cfg.TargetProblemFitness, "target-score", cfg.TargetProblemFitness, "score that ends the current crossover row")
	flag.Float64Var(&cfg.Mutation.Min, "mutation-min", cfg.Mutation.Min, "lowest mutation rate")
	flag.Float64Var(&cfg.Mutation.Max, "mutation-max", cfg.Mutation.Max, "highest mutation rate")
	flag.IntVar(&cfg.Mutation.Count, "mutation-count", cfg.Mutation.Count, "number of mutation rates")
	flag.BoolVar(&cfg.Mutation.Invert, "mutation-invert", cfg.Mutation.Invert, "sweep mutation rates from high to low")
	flag.Float64Var(&cfg.Crossover.Min, "crossover-min", cfg.Crossover.Min, "lowest crossover rate")
	flag.Float64Var(&cfg.Crossover.Max, "crossover-max", cfg.Crossover.Max, "highest crossover rate")
	flag.IntVar(&cfg.Crossover.Count, "crossover-count", cfg.Crossover.Count, "number of crossover rates")
	flag.BoolVar(&cfg.Crossover.Invert, "crossover-invert", cfg.Crossover.Invert, "sweep crossover rates from high to low")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent trials per wave (0 = CPUs - 2)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "debug logging and per-cell table")
	flag.BoolVar(&cfg.TraceTrials, "trace", cfg.TraceTrials, "log every generation of every trial (with -verbose)")
	flag.StringVar(&storeKind, "store", storeKind, "persist the report ("+strings.Join(storage.PersistentNames(), ", ")+"); empty disables")
	flag.StringVar(&dbPath, "db", dbPath, "sqlite database path")
	flag.BoolVar(&listReports, "list", listReports, "list saved reports and exit")
	flag.StringVar(&showID, "show", showID, "print a saved report by id and exit")
	flag.Parse()

	if listReports || showID != "" {
		kind := storeKind
		if kind == "" {
			kind = "sqlite"
		}
		store, err := openStore(kind, dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		err = useStore(context.Background(), store, func(ctx context.Context, s storage.Store) error {
			if listReports {
				return writeReportList(ctx, os.Stdout, s)
			}
			return writeSavedReport(ctx, os.Stdout, s, showID, cfg.Format)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	bar := progressbar.NewOptions(1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("sweep"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	e, err := engine.New(cfg, engine.WithLogger(logger), engine.WithProgress(bar))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	bar.ChangeMax(e.TotalCells())

	if cfg.Format != "json" {
		engine.WriteTextHeader(os.Stdout, e.Config())
	}

	report := e.Run()
	_ = bar.Finish()

	if storeKind != "" {
		store, err := openStore(storeKind, dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error saving report: %v\n", err)
			os.Exit(1)
		}
		id, err := saveReport(context.Background(), store, report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error saving report: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Saved report %s (%s)\n", id, storeKind)
	}

	switch cfg.Format {
	case "json":
		if err := engine.WriteJSONFinal(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
			os.Exit(1)
		}
	default:
		engine.WriteTextFinal(os.Stdout, report)
	}
}

// findConfigFlag looks for -config ahead of flag.Parse so the file can seed
// the defaults that the other flags override.
func findConfigFlag(args []string) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name != "config" || !strings.HasPrefix(arg, "-") {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func loadConfigFile(path string, cfg *engine.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}

// openStore rejects backends that would drop the report when the process exits.
func openStore(kind, dbPath string) (storage.Store, error) {
	if !storage.Persistent(kind) {
		return nil, fmt.Errorf("store %q does not keep reports across runs (use %s)",
			kind, strings.Join(storage.PersistentNames(), ", "))
	}
	return storage.NewStore(kind, dbPath)
}

// useStore initialises store, runs fn and closes the store, returning the
// first error among them.
func useStore(ctx context.Context, store storage.Store, fn func(context.Context, storage.Store) error) (err error) {
	defer func() {
		if cerr := storage.CloseIfSupported(store); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}()

	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	return fn(ctx, store)
}

func saveReport(ctx context.Context, store storage.Store, report engine.FinalReport) (string, error) {
	record := storage.NewRecord(report)
	err := useStore(ctx, store, func(ctx context.Context, s storage.Store) error {
		return s.SaveReport(ctx, record)
	})
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

func writeReportList(ctx context.Context, w io.Writer, store storage.Store) error {
	summaries, err := store.ListReports(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No saved reports.")
		return nil
	}
	fmt.Fprintf(w, "%-36s  %-20s  %10s  %10s  %8s  %5s\n", "ID", "Created", "Mutation", "Crossover", "Score", "Cells")
	for _, s := range summaries {
		fmt.Fprintf(w, "%-36s  %-20s  %10.6f  %10.6f  %8.4f  %5d\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.BestPoint.MutationRate, s.BestPoint.CrossoverRate, s.BestScore, s.CellsEvaluated)
	}
	return nil
}

func writeSavedReport(ctx context.Context, w io.Writer, store storage.Store, id, format string) error {
	record, ok, err := store.GetReport(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("report %s not found", id)
	}
	if format == "json" {
		return engine.WriteJSONFinal(w, record.Report)
	}
	fmt.Fprintf(w, "Report %s (saved %s)\n", record.ID, record.CreatedAt.Format("2006-01-02 15:04:05"))
	engine.WriteTextHeader(w, record.Report.Config)
	engine.WriteTextFinal(w, record.Report)
	return nil
}
