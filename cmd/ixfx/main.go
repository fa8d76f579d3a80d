// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ixfkit
// Source: github.com/ixfkit/ixf

// Command ixfx lists or extracts entries from SimCity 3000 indexed
// container files.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/ixfkit/ixf"
	"github.com/ixfkit/ixf/internal/pathfilter"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("ixfx", pflag.ContinueOnError)
	extract := flags.BoolP("extract", "e", false, "extract entries to the output directory")
	list := flags.BoolP("list-entries", "l", false, "list entries without extracting")
	overwrite := flags.BoolP("overwrite-existing", "o", false, "overwrite existing output files")
	help := flags.BoolP("help", "?", false, "show usage")
	include := flags.StringArray("include", nil, "glob pattern for output names to keep (repeatable)")
	exclude := flags.StringArray("exclude", nil, "glob pattern for output names to drop (repeatable)")
	workers := flags.Int("workers", 0, "extraction worker count (0 = GOMAXPROCS)")
	logLevel := flags.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat := flags.String("log-format", "console", "log format: console or json")

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *help {
		fmt.Fprintln(os.Stderr, "usage: ixfx (-e|-l) [-o] [--include PATTERN]... [--exclude PATTERN]... <input> [output-dir]")
		flags.PrintDefaults()
		return 0
	}
	if *extract == *list {
		fmt.Fprintln(os.Stderr, "exactly one of --extract or --list-entries is required")
		return 2
	}

	log := newLogger(*logLevel, *logFormat)

	positional := flags.Args()
	if len(positional) < 1 {
		log.Error().Msg("missing input file or directory")
		return 2
	}
	input := positional[0]
	outputDir := "."
	if len(positional) > 1 {
		outputDir = positional[1]
	}

	matcher, err := buildMatcher(*include, *exclude)
	if err != nil {
		log.Error().Err(err).Msg("invalid filter pattern")
		return 2
	}

	containers, err := discoverContainers(input)
	if err != nil {
		log.Error().Err(err).Str("input", input).Msg("discover containers")
		return 1
	}

	exitCode := 0
	for _, path := range containers {
		if err := processContainer(context.Background(), log, path, outputDir, *list, *overwrite, *workers, matcher); err != nil {
			log.Error().Err(err).Str("file", path).Msg("processing failed")
			exitCode = 1
		}
	}

	return exitCode
}

func newLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var w = os.Stderr
	if format == "json" {
		return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
}

func buildMatcher(include, exclude []string) (*pathfilter.Matcher, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	var rules []pathfilter.Rule
	defaultAction := pathfilter.ActionInclude
	if len(include) > 0 {
		defaultAction = pathfilter.ActionExclude
		for _, pattern := range include {
			rules = append(rules, pathfilter.Rule{Action: pathfilter.ActionInclude, Pattern: pattern})
		}
	}
	for _, pattern := range exclude {
		rules = append(rules, pathfilter.Rule{Action: pathfilter.ActionExclude, Pattern: pattern})
	}

	return pathfilter.NewMatcher(rules, pathfilter.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   defaultAction,
	})
}

// discoverContainers returns input itself if it is a file, or every
// recognised-extension file found by recursively walking it if it is a
// directory.
func discoverContainers(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", input, err)
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	var out []string
	err = filepath.WalkDir(input, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		for _, recognised := range ixf.RecognisedContainerExtensions {
			if ext == recognised {
				out = append(out, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk dir %s: %w", input, err)
	}

	return out, nil
}

func processContainer(ctx context.Context, log zerolog.Logger, path, outputDir string, listOnly, overwrite bool, workers int, matcher *pathfilter.Matcher) error {
	r, err := ixf.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	entries := r.Entries()
	if matcher != nil {
		entries = filterEntries(entries, matcher)
	}

	if listOnly {
		for _, e := range entries {
			fmt.Printf("%s\tTGI=%08X/%08X/%08X\toffset=%d\tlen=%d\t%s\n",
				path, uint32(e.Type), e.Group, e.Instance, e.Offset, e.Length, ixf.OutputFileName(e))
		}
		return nil
	}

	dst := filepath.Join(outputDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	stats, err := r.Extract(ctx, dst, ixf.ExtractOptions{
		Entries:    entries,
		MaxWorkers: workers,
		Overwrite:  overwrite,
	})
	log.Info().
		Str("file", path).
		Int("extracted", stats.ExtractedEntries).
		Int("decompressed", stats.DecompressedEntries).
		Int64("bytes", stats.BytesWritten).
		Dur("duration", stats.Duration).
		Msg("extraction complete")

	return err
}

// filterEntries drops entries whose synthesized output name the matcher rejects.
func filterEntries(entries []ixf.Entry, matcher *pathfilter.Matcher) []ixf.Entry {
	out := make([]ixf.Entry, 0, len(entries))
	for _, e := range entries {
		if matcher.Allow(ixf.OutputFileName(e)) {
			out = append(out, e)
		}
	}
	return out
}
