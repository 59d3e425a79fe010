package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/transit-dashboard-data/internal/common/config"
	"github.com/transit-dashboard-data/internal/common/logger"
	"github.com/transit-dashboard-data/internal/pipeline"
)

func main() {
	zipPath := flag.String("zip", "", "path to the GTFS zip archive (overrides GTFS_ZIP_PATH)")
	outputDir := flag.String("out", "", "directory for the generated JSON files (overrides OUTPUT_DIR)")
	flag.Parse()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Failed to load .env file:", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	if *zipPath != "" {
		cfg.GTFSStatic.ZipPath = *zipPath
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	loggerConfig := logger.DefaultConfig(cfg.Logging.FilePath)
	loggerConfig.Level = logger.ParseLogLevel(cfg.Logging.Level)
	log := logger.FromConfig(loggerConfig)

	log.Info("Dashboard data build starting",
		"zip_path", cfg.GTFSStatic.ZipPath,
		"output_dir", cfg.Output.Dir,
		"geojson", cfg.Output.GeoJSON,
		"log_level", cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(pipeline.Config{
		ZipPath:       cfg.GTFSStatic.ZipPath,
		OutputDir:     cfg.Output.Dir,
		ExportGeoJSON: cfg.Output.GeoJSON,
	}, log)

	result, err := p.Run(ctx)
	if err != nil {
		log.Fatal("Dashboard data build failed", "error", err)
	}

	fmt.Println("Generated the following JSON files in", result.OutputDir)
	for _, name := range result.Files {
		fmt.Println(" •", name)
	}
}
