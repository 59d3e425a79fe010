package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	geojson "github.com/paulmach/go.geojson"

	"github.com/transit-dashboard-data/internal/common/logger"
	"github.com/transit-dashboard-data/pkg/gtfs-static/models"
)

const (
	RouteStatsFile    = "route_stats.json"
	TopRoutesFile     = "top10_routes.json"
	HourlyWeekdayFile = "hourly_weekday.json"
	StopDensityFile   = "stop_density.json"
	StopsListFile     = "stops_list.json"
	TopStopsFile      = "top10_stops.json"
	RouteShapesFile   = "route_shapes.json"

	RouteShapesGeoJSONFile = "route_shapes.geojson"
)

// Writer stores reports as JSON files in a single directory.
type Writer struct {
	dir    string
	logger logger.Logger
}

func NewWriter(dir string, logger logger.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

func (w *Writer) Dir() string {
	return w.dir
}

// Prepare creates the output directory. It is a no-op if it already exists.
func (w *Writer) Prepare() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// WriteJSON encodes rows as a JSON array into name and returns the file path.
// Text is written as UTF-8 without escaping.
func (w *Writer) WriteJSON(name string, rows interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rows); err != nil {
		return "", fmt.Errorf("encoding %s: %w", name, err)
	}
	return w.writeFile(name, buf.Bytes())
}

// WriteRouteGeoJSON writes the route shapes as a FeatureCollection of
// LineStrings with a route_id property. Routes with fewer than two resolved
// positions keep their feature with a null geometry.
func (w *Writer) WriteRouteGeoJSON(name string, shapes []models.RouteShape) (string, error) {
	fc := geojson.NewFeatureCollection()
	for _, shape := range shapes {
		feature := geojson.NewFeature(nil)
		if len(shape.Coords) >= 2 {
			line := make([][]float64, 0, len(shape.Coords))
			for _, c := range shape.Coords {
				line = append(line, []float64{c[0], c[1]})
			}
			feature = geojson.NewLineStringFeature(line)
		}
		feature.SetProperty("route_id", shape.RouteID)
		fc.AddFeature(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", name, err)
	}
	return w.writeFile(name, data)
}

// writeFile writes through a temp file in the same directory and renames it
// into place, so name only ever holds a complete report.
func (w *Writer) writeFile(name string, data []byte) (string, error) {
	destPath := filepath.Join(w.dir, name)

	tempFile, err := os.CreateTemp(w.dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return "", fmt.Errorf("setting permissions on %s: %w", name, err)
	}
	if err := os.Rename(tempPath, destPath); err != nil {
		return "", fmt.Errorf("moving %s into place: %w", name, err)
	}

	w.logger.Debug("Report written", "path", destPath, "size_bytes", len(data))
	return destPath, nil
}
