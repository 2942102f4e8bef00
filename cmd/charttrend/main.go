package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ivlev/charttrend/internal/analyzer"
	"github.com/ivlev/charttrend/internal/batch"
	"github.com/ivlev/charttrend/internal/config"
	"github.com/ivlev/charttrend/internal/logger"
	"github.com/ivlev/charttrend/internal/report"
	"github.com/ivlev/charttrend/internal/source"
	"github.com/ivlev/charttrend/internal/system"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code. Stdout only
// ever receives JSON: one object per input path, or a single error object.
func run(args []string, stdout, stderr io.Writer) int {
	start := time.Now()

	strategies := make([]string, 0, len(analyzer.Strategies()))
	for _, s := range analyzer.Strategies() {
		strategies = append(strategies, string(s))
	}

	fs := flag.NewFlagSet("charttrend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPtr := fs.String("config", "", "YAML file with thresholds and defaults")
	strategyPtr := fs.String("strategy", "", "Trend strategy: "+strings.Join(strategies, ", ")+" (default edge-slope)")
	workersPtr := fs.Int("workers", 0, "Images analysed in parallel when several paths are given (default: CPU count)")
	dpiPtr := fs.Int("dpi", 0, "Rasterisation DPI for PDF charts (default 150)")
	levelPtr := fs.String("log-level", "", "Log level on stderr: trace, debug, info, warn, error, disabled")
	formatPtr := fs.String("log-format", "", "Log format on stderr: console, json")
	statsPtr := fs.Bool("stats", false, "Print a performance report to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: charttrend [flags] <image> [image...]\n\n")
		fmt.Fprintf(stderr, "Formats: %s\n\n", strings.Join(source.Extensions, " "))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return fail(stdout, report.MsgInvalidArgs)
	}

	paths := fs.Args()
	if len(paths) == 0 {
		return fail(stdout, report.MsgNoPath)
	}

	cfg, err := config.Load(*configPtr)
	if err != nil {
		fmt.Fprintf(stderr, "[-] %v\n", err)
		return fail(stdout, report.MsgInvalidConfig)
	}
	if *strategyPtr != "" {
		cfg.Strategy = *strategyPtr
	}
	if *workersPtr != 0 {
		cfg.Workers = *workersPtr
	}
	if *dpiPtr != 0 {
		cfg.PDFDPI = *dpiPtr
	}
	if *levelPtr != "" {
		cfg.Log.Level = *levelPtr
	}
	if *formatPtr != "" {
		cfg.Log.Format = *formatPtr
	}
	cfg.ShowStats = cfg.ShowStats || *statsPtr

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "[-] %v\n", err)
		return fail(stdout, report.MsgInvalidConfig)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "[-] %v\n", err)
		return fail(stdout, report.MsgInvalidConfig)
	}

	an, err := analyzer.NewAnalyzer(cfg.Strategy, cfg.Analyzer, log)
	if err != nil {
		log.Error().Err(err).Msg("strategy")
		return fail(stdout, report.MsgInvalidConfig)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loader := source.NewLoader(source.Options{PDFDPI: cfg.PDFDPI})
	runner := batch.NewRunner(loader, an, cfg.Workers, log)

	log.Debug().
		Str("strategy", cfg.Strategy).
		Int("images", len(paths)).
		Int("workers", cfg.Workers).
		Msg("starting")

	code := 0
	for _, it := range runner.Run(ctx, paths) {
		if it.Err != nil {
			code = 1
		}
		if err := report.Write(stdout, it.Output()); err != nil {
			log.Error().Err(err).Msg("write result")
			code = 1
		}
	}

	if cfg.ShowStats {
		stats, err := system.CollectStats(start, len(paths))
		if err != nil {
			log.Warn().Err(err).Msg("collect stats")
		}
		stats.Log(log)
	}

	return code
}

func fail(stdout io.Writer, msg string) int {
	_ = report.Write(stdout, report.Failure(msg, ""))
	return 1
}
