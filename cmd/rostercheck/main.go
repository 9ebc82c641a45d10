// Command rostercheck validates roster CSV files from the command line.
//
// Usage:
//
//	rostercheck [-j N] [-xlsx dir] [-region US] [-log-level info] file.csv...
//
// A summary is logged for every file. With -xlsx, a highlighted workbook is
// written per file. The exit status is 1 when any file fails the extension,
// parse or required-column checks, and 2 on usage errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/csvroster/internal/core"
	"github.com/JonMunkholm/csvroster/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

type options struct {
	jobs        int
	xlsxDir     string
	region      string
	maxFileSize int64
}

// run parses args, checks every file and returns the exit status.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("rostercheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.IntVar(&opts.jobs, "j", runtime.NumCPU(), "number of files checked in parallel")
	fs.StringVar(&opts.xlsxDir, "xlsx", "", "write a highlighted XLSX per file into `dir`")
	fs.StringVar(&opts.region, "region", core.DefaultRegion, "phone region for numbers without a country code")
	fs.Int64Var(&opts.maxFileSize, "max-size", core.DefaultMaxFileSize, "maximum file size in bytes")
	level := fs.String("log-level", "info", "log level: debug, info, warn, error")
	format := fs.String("log-format", "text", "log format: text or json")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: rostercheck [flags] file.csv...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}

	logger := logging.New(stderr, *level, *format)

	if opts.xlsxDir != "" {
		if err := os.MkdirAll(opts.xlsxDir, 0o755); err != nil {
			logger.Error("create output directory", "dir", opts.xlsxDir, "error", err)
			return 1
		}
	}

	failed := checkFiles(ctx, logger, opts, fs.Args())
	if failed > 0 {
		logger.Error("roster check failed", "files", fs.NArg(), "failed", failed)
		return 1
	}
	return 0
}

// checkFiles validates files with at most opts.jobs running at once and
// returns how many failed.
func checkFiles(ctx context.Context, logger *slog.Logger, opts options, files []string) int64 {
	importer := core.NewImporter(opts.maxFileSize)
	processor := core.NewProcessor(opts.region)

	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)

	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			summary, err := checkFile(importer, processor, path, opts.xlsxDir)
			if err != nil {
				failed.Add(1)
				logger.Error("file rejected",
					"file", path,
					"code", core.MapError(err).Code,
					"reason", core.FormatUserError(err),
					"error", err,
				)
				return nil
			}

			logger.Info("file checked",
				"file", path,
				"rows", summary.TotalRows,
				"flagged_rows", summary.FlaggedRows,
				"duplicate_rows", summary.DuplicateRows,
				"flagged_by_field", summary.FlaggedByField,
			)
			return nil
		})
	}

	// Only cancellation surfaces here; per-file errors are counted above.
	if err := g.Wait(); err != nil {
		logger.Error("roster check aborted", "error", err)
		failed.Add(1)
	}
	return failed.Load()
}

// checkFile imports and validates one roster and optionally writes its
// workbook.
func checkFile(importer *core.Importer, processor *core.Processor, path, xlsxDir string) (core.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Summary{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	heading, rows, err := importer.Import(filepath.Base(path), f)
	if err != nil {
		return core.Summary{}, fmt.Errorf("import %s: %w", path, err)
	}

	normalized := processor.Process(rows)

	if xlsxDir != "" {
		if err := writeWorkbook(filepath.Join(xlsxDir, workbookName(path)), heading, normalized); err != nil {
			return core.Summary{}, err
		}
	}

	return core.Summarize(normalized), nil
}

func writeWorkbook(path string, heading core.Heading, rows []core.NormalizedRow) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := core.WriteXLSX(out, heading, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// workbookName maps "in/roster.csv" to "roster_validated.xlsx".
func workbookName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_validated.xlsx"
}
