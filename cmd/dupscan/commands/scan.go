// Package commands implements CLI command handlers for dupscan.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dupscan/dupscan/internal/apted"
	"github.com/dupscan/dupscan/internal/config"
	"github.com/dupscan/dupscan/internal/detector"
	"github.com/dupscan/dupscan/internal/discovery"
	"github.com/dupscan/dupscan/internal/extract/gosrc"
	"github.com/dupscan/dupscan/internal/fingerprint"
	"github.com/dupscan/dupscan/internal/logging"
	"github.com/dupscan/dupscan/internal/observability"
	"github.com/dupscan/dupscan/internal/report"
	"github.com/dupscan/dupscan/internal/scorer"
	"github.com/dupscan/dupscan/pkg/method"
)

// scanOptions holds every flag the scan command recognizes (spec §6).
type scanOptions struct {
	configPath           string
	paths                []string
	extensions           []string
	exclude              []string
	threshold            float64
	minLines             int
	maxLines             int
	minTokens            int
	noSizePenalty        bool
	renameCost           float64
	deleteCost           float64
	insertCost           float64
	kindDistanceWeight   float64
	includeFilePattern   string
	includeMethodPattern string
	print                bool
	printAll             bool
	format               string
	output               string
	jobs                 int
	metricsAddr          string
}

// NewScanCommand builds the "dupscan scan" command.
func NewScanCommand() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a codebase for duplicate methods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Optional YAML config file")
	cmd.Flags().StringSliceVarP(&opts.paths, "paths", "p", []string{"."}, "Files or directories to scan")
	cmd.Flags().StringSliceVarP(&opts.extensions, "extensions", "e", []string{".go"}, "File extensions to scan")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "Doublestar glob patterns to skip")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0.87, "Similarity threshold for a duplicate group")
	cmd.Flags().IntVar(&opts.minLines, "min-lines", 5, "Minimum method line count to consider")
	cmd.Flags().IntVar(&opts.maxLines, "max-lines", 1<<30, "Maximum method line count to consider")
	cmd.Flags().IntVar(&opts.minTokens, "min-tokens", 0, "Minimum method token count to consider")
	cmd.Flags().BoolVar(&opts.noSizePenalty, "no-size-penalty", false, "Disable the size-ratio and short-function penalties")
	cmd.Flags().Float64Var(&opts.renameCost, "rename-cost", 0.3, "APTED rename cost")
	cmd.Flags().Float64Var(&opts.deleteCost, "delete-cost", 1.0, "APTED delete cost")
	cmd.Flags().Float64Var(&opts.insertCost, "insert-cost", 1.0, "APTED insert cost")
	cmd.Flags().Float64Var(&opts.kindDistanceWeight, "kind-distance-weight", 0.5, "Weight applied to kind distance in rename cost")
	cmd.Flags().StringVar(&opts.includeFilePattern, "include-file-pattern", "", "Only scan files whose path matches this regex")
	cmd.Flags().StringVar(&opts.includeMethodPattern, "include-method-pattern", "", "Only consider methods whose full name matches this regex")
	cmd.Flags().BoolVar(&opts.print, "print", false, "Print a code slice for each duplicate")
	cmd.Flags().BoolVar(&opts.printAll, "print-all", false, "Print every method's full code slice and a diff against the representative")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Report format: text, json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Redirect the report to this file instead of stdout")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 0, "Worker pool width for pairwise scoring (0 = runtime.NumCPU())")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "If set, serve Prometheus metrics on this host:port for the run's duration")

	return cmd
}

func runScan(ctx context.Context, opts *scanOptions) error {
	runID := uuid.New().String()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	applyFlagOverrides(cfg, opts)

	logger := logging.New(logging.Options{RunID: runID, JSON: cfg.Logging.JSON})

	metrics := observability.New()

	var metricsSrv *http.Server

	if opts.metricsAddr != "" {
		metricsSrv = observability.NewServer(opts.metricsAddr, metrics)

		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()

		defer metricsSrv.Close()
	}

	start := time.Now()

	files, err := loadFiles(opts, logger, metrics)
	if err != nil {
		return err
	}

	detOpts, err := buildDetectorOptions(opts)
	if err != nil {
		return err
	}

	stats := &detector.Stats{}
	detOpts.Stats = stats

	groups := detector.Detect(files, detOpts, opts.threshold)

	metrics.ScanDuration.Observe(time.Since(start).Seconds())
	metrics.GroupsFound.Add(float64(len(groups)))
	metrics.MethodsEligible.Add(float64(stats.MethodsEligible))
	metrics.PairsConsidered.Add(float64(stats.PairsConsidered))
	metrics.PairsAdmitted.Add(float64(stats.PairsAdmitted))
	metrics.PairsScored.Add(float64(stats.PairsScored))

	logger.Info("scan complete", "groups", len(groups), "duration", time.Since(start))

	out := os.Stdout

	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("dupscan: open output: %w", err)
		}

		defer f.Close()

		out = f
	}

	return report.Render(out, groups, report.Options{
		Format:   report.Format(opts.format),
		Print:    opts.print,
		PrintAll: opts.printAll,
		RunID:    runID,
	}, sourceLoader)
}

func applyFlagOverrides(cfg *config.Config, opts *scanOptions) {
	cfg.Scan.Threshold = opts.threshold
	cfg.Scan.MinLines = opts.minLines
	cfg.Scan.MaxLines = opts.maxLines
	cfg.Scan.MinTokens = opts.minTokens
	cfg.Scan.NoSizePenalty = opts.noSizePenalty
	cfg.Scan.Jobs = opts.jobs
	cfg.Apted.RenameCost = opts.renameCost
	cfg.Apted.DeleteCost = opts.deleteCost
	cfg.Apted.InsertCost = opts.insertCost
	cfg.Apted.KindDistanceWeight = opts.kindDistanceWeight
}

func buildDetectorOptions(opts *scanOptions) (detector.Options, error) {
	detOpts := detector.DefaultOptions()
	detOpts.MinLines = opts.minLines
	detOpts.MaxLines = opts.maxLines
	detOpts.MinTokens = opts.minTokens
	detOpts.SizePenalty = !opts.noSizePenalty
	detOpts.Jobs = opts.jobs

	detOpts.Scorer = scorer.Options{
		SizePenalty: !opts.noSizePenalty,
		Apted: apted.Config{
			RenameCost:         opts.renameCost,
			DeleteCost:         opts.deleteCost,
			InsertCost:         opts.insertCost,
			KindDistanceWeight: opts.kindDistanceWeight,
		},
	}

	if opts.includeMethodPattern != "" {
		re, err := regexp.Compile(opts.includeMethodPattern)
		if err != nil {
			return detector.Options{}, fmt.Errorf("dupscan: invalid --include-method-pattern: %w", err)
		}

		detOpts.IncludeMethodPattern = re
	}

	return detOpts, nil
}

func loadFiles(opts *scanOptions, logger *slog.Logger, metrics *observability.Metrics) ([]*method.File, error) {
	var filePattern *regexp.Regexp

	if opts.includeFilePattern != "" {
		re, err := regexp.Compile(opts.includeFilePattern)
		if err != nil {
			return nil, fmt.Errorf("dupscan: invalid --include-file-pattern: %w", err)
		}

		filePattern = re
	}

	paths, err := discovery.Find(opts.paths, discovery.Options{
		Extensions: opts.extensions,
		Exclude:    opts.exclude,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	extractor := gosrc.New()

	bar := progressbar.Default(int64(len(paths)), "parsing")

	var files []*method.File

	for _, path := range paths {
		_ = bar.Add(1)

		if filePattern != nil && !filePattern.MatchString(path) {
			continue
		}

		infos, err := extractor.Extract(path)
		if err != nil {
			logger.Warn("skipping file with parse error", "path", path, "error", err)
			metrics.FileParseErrors.Inc()

			continue
		}

		metrics.FilesParsed.Inc()

		f := &method.File{Path: path}

		for _, info := range infos {
			fp := fingerprint.Build(info.Tree)
			f.Methods = append(f.Methods, method.NewRecord(info, fp))
		}

		files = append(files, f)
	}

	return files, nil
}

// sourceLoader reads the requested line range directly from disk for
// report code-slice rendering.
func sourceLoader(path string, startLine, endLine int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dupscan: read source: %w", err)
	}

	lines := splitLines(string(data))

	if startLine < 1 {
		startLine = 1
	}

	if endLine > len(lines) {
		endLine = len(lines)
	}

	if startLine > endLine {
		return nil, nil
	}

	return lines[startLine-1 : endLine], nil
}

func splitLines(s string) []string {
	var lines []string

	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}

	if start < len(s) {
		lines = append(lines, s[start:])
	}

	return lines
}
