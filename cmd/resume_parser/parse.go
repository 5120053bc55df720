package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/logging"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/types"
)

// parseConcurrency bounds how many files parse at once in batch mode.
const parseConcurrency = 4

var (
	parseModeFlag string
	parseJSONFlag bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file> [file...]",
	Short: "Parse resume files into structured JSON",
	Long:  `Parse one or more resume files (PDF, DOCX, HTML, plain text) and print the structured result. Multiple files parse concurrently.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseModeFlag, "mode", "auto", "Parsing strategy: auto, heuristic, or llm")
	parseCmd.Flags().BoolVar(&parseJSONFlag, "json", false, "Print raw JSON instead of the formatted summary")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	mode, err := pipeline.ParseMode(parseModeFlag)
	if err != nil {
		return err
	}

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	parser := pipeline.New(cfg, log)
	if err := parser.Connect(cmd.Context()); err != nil {
		return err
	}
	defer func() { _ = parser.Close() }()

	results := make(map[string]*types.ResumeParseResult, len(args))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(parseConcurrency)
	for _, path := range args {
		g.Go(func() error {
			result, err := parseFile(ctx, parser, path, mode)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			mu.Lock()
			results[path] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	paths := make([]string, 0, len(results))
	for path := range results {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	printer := observability.NewPrinter(os.Stdout)
	for _, path := range paths {
		if len(paths) > 1 {
			fmt.Printf("== %s ==\n", path)
		}
		if parseJSONFlag {
			data, err := json.MarshalIndent(results[path], "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			continue
		}
		printer.PrintResult(results[path])
	}
	return nil
}

func parseFile(ctx context.Context, parser *pipeline.Parser, path string, mode pipeline.Mode) (*types.ResumeParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.ParseBytes(ctx, data, filepath.Base(path), mode)
}
