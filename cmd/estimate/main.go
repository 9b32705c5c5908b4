package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lawnquote/estimates-engine/internal/async"
	"github.com/lawnquote/estimates-engine/internal/catalog"
	"github.com/lawnquote/estimates-engine/internal/estimate"
	"github.com/lawnquote/estimates-engine/internal/export"
)

// estimate is the offline batch tool: it takes files of raw generator
// text (or stdin), runs the normalization pipeline against a local
// materials catalog, and writes JSON or XLSX estimates.
func main() {
	var (
		catalogPath = flag.String("catalog", "", "path to a sqlite materials catalog")
		catalogJSON = flag.String("catalog-json", "", "path to a JSON materials catalog")
		addMaterial = flag.String("add-material", "", `add "description=price" to the sqlite catalog and exit`)
		outDir      = flag.String("out", ".", "output directory for batch mode")
		format      = flag.String("format", "json", "output format: json or xlsx")
		workers     = flag.Int("workers", 4, "batch worker count")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	if *addMaterial != "" {
		if err := runAddMaterial(ctx, *catalogPath, *addMaterial, logger); err != nil {
			logger.Error("failed to add material", "error", err)
			os.Exit(1)
		}
		return
	}

	materials, err := loadMaterials(ctx, *catalogPath, *catalogJSON, logger)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "materials", len(materials))

	pipe := estimate.NewPipeline(logger)
	exporter := export.NewService(logger)

	inputs := flag.Args()
	if len(inputs) == 0 {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Error("failed to read stdin", "error", err)
			os.Exit(1)
		}
		result := pipe.BuildEstimate(string(raw), materials)
		if err := emit(os.Stdout, result, *format, exporter); err != nil {
			logger.Error("failed to write estimate", "error", err)
			os.Exit(1)
		}
		return
	}

	process := func(ctx context.Context, job async.Job) error {
		raw, err := os.ReadFile(job.InputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		result := pipe.BuildEstimate(string(raw), materials)
		outPath := outputPath(*outDir, job.InputPath, *format)
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		return emit(f, result, *format, exporter)
	}

	queue := async.NewEstimateQueue(process, logger,
		async.WithWorkers(*workers),
		async.WithQueueSize(len(inputs)+1),
		async.WithProcessTimeout(time.Minute),
	)
	for _, in := range inputs {
		_ = queue.Enqueue(ctx, async.Job{InputPath: in, SubmittedAt: time.Now()})
	}
	queue.Shutdown(ctx)
}

func runAddMaterial(ctx context.Context, catalogPath, arg string, logger *slog.Logger) error {
	if catalogPath == "" {
		return fmt.Errorf("-catalog is required with -add-material")
	}
	desc, priceStr, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("expected \"description=price\", got %q", arg)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(priceStr), 64)
	if err != nil || price < 0 {
		return fmt.Errorf("invalid price %q", priceStr)
	}
	store, err := catalog.OpenSQLite(catalogPath, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	id, err := store.Add(ctx, strings.TrimSpace(desc), price)
	if err != nil {
		return err
	}
	logger.Info("material added", "id", id, "description", strings.TrimSpace(desc), "unit_price", price)
	return nil
}

func loadMaterials(ctx context.Context, catalogPath, catalogJSON string, logger *slog.Logger) ([]estimate.CatalogMaterial, error) {
	switch {
	case catalogPath != "":
		store, err := catalog.OpenSQLite(catalogPath, logger)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.List(ctx)
	case catalogJSON != "":
		b, err := os.ReadFile(catalogJSON)
		if err != nil {
			return nil, err
		}
		var materials []estimate.CatalogMaterial
		if err := json.Unmarshal(b, &materials); err != nil {
			return nil, fmt.Errorf("decode catalog json: %w", err)
		}
		return materials, nil
	default:
		return nil, nil
	}
}

func emit(w io.Writer, result estimate.Result, format string, exporter *export.Service) error {
	if format == "xlsx" {
		b, err := exporter.EstimateXLSX(result)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func outputPath(dir, input, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	ext := ".estimate.json"
	if format == "xlsx" {
		ext = ".estimate.xlsx"
	}
	return filepath.Join(dir, base+ext)
}
