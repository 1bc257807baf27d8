// Command extract turns a JLPT N3 textbook (PDF, DOCX, XLSX or plain text)
// into a lesson document of vocabulary or grammar entries.
//
// Flags:
//
//	-config       path to YAML config (default: CONFIG_PATH or ./config.yaml)
//	-kind         vocabulary or grammar
//	-in, -out     input file and output JSON path
//	-xlsx         also write a spreadsheet export
//	-chunk-size   entries per lesson (0 = kind default)
//	-min-quality  minimum vocabulary quality score, 0..4
//	-sort         lesson order: source or quality
//	-no-examples  do not generate template examples
//	-dry-run      extract and report without writing
//	-watch        re-run whenever the input file changes
//	-version      print version and exit
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/heartmarshall/n3vocab/internal/app"
	"github.com/heartmarshall/n3vocab/internal/app/extractor"
	"github.com/heartmarshall/n3vocab/internal/app/extractor/lesson"
	"github.com/heartmarshall/n3vocab/internal/app/extractor/vocab"
	"github.com/heartmarshall/n3vocab/internal/config"
	"github.com/heartmarshall/n3vocab/internal/domain"
	"github.com/heartmarshall/n3vocab/internal/source"
	"github.com/heartmarshall/n3vocab/internal/watcher"
)

type flags struct {
	config     string
	kind       string
	in         string
	out        string
	xlsx       string
	chunkSize  int
	minQuality int
	sort       string
	noExamples bool
	dryRun     bool
	watch      bool
	version    bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var f flags
	flag.StringVar(&f.config, "config", "", "path to YAML config")
	flag.StringVar(&f.kind, "kind", "", "vocabulary or grammar")
	flag.StringVar(&f.in, "in", "", "input file")
	flag.StringVar(&f.out, "out", "", "output JSON path")
	flag.StringVar(&f.xlsx, "xlsx", "", "also write a spreadsheet export to this path")
	flag.IntVar(&f.chunkSize, "chunk-size", 0, "entries per lesson (0 = kind default)")
	flag.IntVar(&f.minQuality, "min-quality", 0, "minimum vocabulary quality score")
	flag.StringVar(&f.sort, "sort", "", "lesson order: source or quality")
	flag.BoolVar(&f.noExamples, "no-examples", false, "do not generate template examples")
	flag.BoolVar(&f.dryRun, "dry-run", false, "extract and report without writing")
	flag.BoolVar(&f.watch, "watch", false, "re-run whenever the input file changes")
	flag.BoolVar(&f.version, "version", false, "print version and exit")
	flag.Parse()

	if f.version {
		fmt.Println(app.Name, app.BuildVersion())
		return nil
	}

	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	applyFlags(&cfg.Extract, &cfg.Export, f)
	if err := cfg.Extract.Validate(); err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	if cfg.Extract.InputPath == "" {
		return errors.New("input file is required (-in or extract.input_path)")
	}
	if cfg.Extract.OutputPath == "" && !f.dryRun {
		return errors.New("output path is required (-out or extract.output_path)")
	}

	logger := app.NewLogger(cfg.Log)

	var readings vocab.ReadingResolver
	if cfg.Extract.Kind == domain.KindVocabulary {
		if readings, err = app.NewReadingResolver(cfg.Reading, logger); err != nil {
			return fmt.Errorf("reading resolver: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func(ctx context.Context) error {
		bar := newPageBar()
		reader := source.NewReader(source.WithProgress(bar.update))
		pcfg := extractor.Config{
			Kind:             cfg.Extract.Kind,
			InputPath:        cfg.Extract.InputPath,
			OutputPath:       cfg.Extract.OutputPath,
			XLSXPath:         cfg.Export.XLSXPath,
			LessonSize:       cfg.Extract.LessonSize(),
			MinQuality:       cfg.Extract.MinQuality,
			SortPolicy:       cfg.Extract.SortPolicy,
			GenerateExamples: !cfg.Extract.NoExamples,
			Lookahead:        cfg.Extract.Lookahead,
			Level:            cfg.Extract.Level,
			DryRun:           f.dryRun,
			Generator:        app.Generator(),
		}
		p := extractor.NewPipeline(logger, reader, readings, pcfg)
		report, err := p.Run(ctx)
		bar.finish()
		if err != nil {
			return err
		}
		printSummary(report)
		return nil
	}

	if !f.watch {
		return runOnce(ctx)
	}

	if err := runOnce(ctx); err != nil {
		color.Red("run failed: %v", err)
	}
	w := watcher.New(cfg.Extract.InputPath, func(ctx context.Context) {
		color.Cyan("\n%s changed, extracting again", cfg.Extract.InputPath)
		if err := runOnce(ctx); err != nil {
			color.Red("run failed: %v", err)
		}
	}, watcher.WithDebounce(cfg.Extract.WatchDebounce), watcher.WithLogger(logger))

	color.Cyan("watching %s (Ctrl+C to stop)", cfg.Extract.InputPath)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("watch stopped", slog.String("input", cfg.Extract.InputPath))
	return nil
}

// applyFlags overrides config values with flags that were set explicitly.
func applyFlags(e *config.ExtractConfig, x *config.ExportConfig, f flags) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "kind":
			e.Kind = domain.Kind(f.kind)
		case "in":
			e.InputPath = f.in
		case "out":
			e.OutputPath = f.out
		case "xlsx":
			x.XLSXPath = f.xlsx
		case "chunk-size":
			e.ChunkSize = f.chunkSize
		case "min-quality":
			e.MinQuality = f.minQuality
		case "sort":
			e.SortPolicy = lesson.SortPolicy(f.sort)
		case "no-examples":
			e.NoExamples = f.noExamples
		}
	})
}
