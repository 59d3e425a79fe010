package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/transit-dashboard-data/internal/common/logger"
	"github.com/transit-dashboard-data/internal/gtfs-static/cleaner"
	"github.com/transit-dashboard-data/internal/gtfs-static/parser"
	"github.com/transit-dashboard-data/internal/output"
	"github.com/transit-dashboard-data/internal/reports"
)

type Config struct {
	ZipPath       string
	OutputDir     string
	ExportGeoJSON bool
}

// Pipeline runs one full rebuild of the dashboard reports from a feed archive.
type Pipeline struct {
	config  Config
	parser  *parser.Parser
	cleaner *cleaner.Cleaner
	writer  *output.Writer
	logger  logger.Logger
}

// Result summarises a completed run
type Result struct {
	OutputDir string
	Files     []string // file names in write order
	Rows      map[string]int
	Duration  time.Duration
}

func New(config Config, logger logger.Logger) *Pipeline {
	return &Pipeline{
		config:  config,
		parser:  parser.New(logger),
		cleaner: cleaner.New(logger, cleaner.SanFrancisco),
		writer:  output.NewWriter(config.OutputDir, logger),
		logger:  logger,
	}
}

// Run loads and cleans the feed, builds every report and only then writes
// them, so a load or cleaning failure leaves the output directory untouched.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	feed, err := p.parser.ParseZip(ctx, p.config.ZipPath)
	if err != nil {
		return nil, fmt.Errorf("loading feed: %w", err)
	}

	dataset, err := p.cleaner.Clean(feed)
	if err != nil {
		return nil, fmt.Errorf("cleaning feed: %w", err)
	}

	set := reports.Build(dataset)

	if err := p.writer.Prepare(); err != nil {
		return nil, err
	}

	result := &Result{
		OutputDir: p.writer.Dir(),
		Rows:      make(map[string]int),
	}

	outputs := []struct {
		name  string
		rows  interface{}
		count int
	}{
		{output.RouteStatsFile, set.RouteStats, len(set.RouteStats)},
		{output.TopRoutesFile, set.TopRoutes, len(set.TopRoutes)},
		{output.HourlyWeekdayFile, set.HourlyWeekday, len(set.HourlyWeekday)},
		{output.StopDensityFile, set.StopDensity, len(set.StopDensity)},
		{output.StopsListFile, set.StopsList, len(set.StopsList)},
		{output.TopStopsFile, set.TopStops, len(set.TopStops)},
		{output.RouteShapesFile, set.RouteShapes, len(set.RouteShapes)},
	}

	for _, o := range outputs {
		if _, err := p.writer.WriteJSON(o.name, o.rows); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, o.name)
		result.Rows[o.name] = o.count
	}

	if p.config.ExportGeoJSON {
		if _, err := p.writer.WriteRouteGeoJSON(output.RouteShapesGeoJSONFile, set.RouteShapes); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, output.RouteShapesGeoJSONFile)
		result.Rows[output.RouteShapesGeoJSONFile] = len(set.RouteShapes)
	}

	result.Duration = time.Since(start)
	p.logger.Info("Reports generated",
		"output_dir", result.OutputDir,
		"files", len(result.Files),
		"route_stats", len(set.RouteStats),
		"stops", len(set.StopsList),
		"route_shapes", len(set.RouteShapes),
		"duration", result.Duration.String())

	return result, nil
}
