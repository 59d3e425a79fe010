package parser

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/transit-dashboard-data/internal/common/logger"
	"github.com/transit-dashboard-data/pkg/gtfs-static/models"
)

const (
	RoutesFile    = "routes.txt"
	StopsFile     = "stops.txt"
	TripsFile     = "trips.txt"
	StopTimesFile = "stop_times.txt"
	CalendarFile  = "calendar.txt"
)

// parseOrder lists the tables read from every archive. Each must be present.
var parseOrder = []string{
	RoutesFile,
	StopsFile,
	TripsFile,
	StopTimesFile,
	CalendarFile,
}

// requiredColumns are the columns each table must declare in its header.
// Other columns are ignored.
var requiredColumns = map[string][]string{
	RoutesFile:    {"route_id", "route_short_name", "route_long_name", "route_type", "route_color"},
	StopsFile:     {"stop_id", "stop_name", "stop_lat", "stop_lon"},
	TripsFile:     {"trip_id", "route_id", "service_id"},
	StopTimesFile: {"trip_id", "arrival_time", "stop_id", "stop_sequence"},
	CalendarFile:  {"service_id", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
}

type Parser struct {
	logger logger.Logger
}

func New(logger logger.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseZip reads the five GTFS tables from the archive at zipPath. Values are
// kept as raw text.
func (p *Parser) ParseZip(ctx context.Context, zipPath string) (*models.Feed, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, &ArchiveError{Path: zipPath, Err: err}
	}
	defer reader.Close()

	p.logger.Info("Parsing GTFS zip file", "path", zipPath, "files", len(reader.File))

	fileMap := make(map[string]*zip.File)
	for _, file := range reader.File {
		fileMap[file.Name] = file
	}

	for _, fileName := range parseOrder {
		if _, exists := fileMap[fileName]; !exists {
			return nil, &MissingTableError{Table: fileName}
		}
	}

	feed := &models.Feed{}
	for _, fileName := range parseOrder {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var handle func(record []string, headerMap map[string]int)
		switch fileName {
		case RoutesFile:
			handle = func(record []string, headerMap map[string]int) {
				feed.Routes = append(feed.Routes, p.parseRoute(record, headerMap))
			}
		case StopsFile:
			handle = func(record []string, headerMap map[string]int) {
				feed.Stops = append(feed.Stops, p.parseStop(record, headerMap))
			}
		case TripsFile:
			handle = func(record []string, headerMap map[string]int) {
				feed.Trips = append(feed.Trips, p.parseTrip(record, headerMap))
			}
		case StopTimesFile:
			handle = func(record []string, headerMap map[string]int) {
				feed.StopTimes = append(feed.StopTimes, p.parseStopTime(record, headerMap))
			}
		case CalendarFile:
			handle = func(record []string, headerMap map[string]int) {
				feed.Calendar = append(feed.Calendar, p.parseCalendar(record, headerMap))
			}
		}

		if err := p.parseFile(zipPath, fileMap[fileName], handle); err != nil {
			return nil, err
		}
	}

	p.logger.Info("GTFS parsing completed successfully",
		"routes", len(feed.Routes),
		"stops", len(feed.Stops),
		"trips", len(feed.Trips),
		"stop_times", len(feed.StopTimes),
		"calendar", len(feed.Calendar))

	return feed, nil
}

func (p *Parser) parseFile(zipPath string, file *zip.File, handle func([]string, map[string]int)) error {
	p.logger.Debug("Parsing file", "name", file.Name, "size", file.UncompressedSize64)

	rc, err := file.Open()
	if err != nil {
		return &ArchiveError{Path: zipPath, Table: file.Name, Err: err}
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1 // Variable number of fields
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return &MissingTableError{Table: file.Name, Column: requiredColumns[file.Name][0]}
	}
	if err != nil {
		return &ArchiveError{Path: zipPath, Table: file.Name, Err: err}
	}

	// Strip BOM from first field if present
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\xef\xbb\xbf")
	}

	headerMap := make(map[string]int)
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, seen := headerMap[name]; !seen {
			headerMap[name] = i
		}
	}

	for _, column := range requiredColumns[file.Name] {
		if _, ok := headerMap[column]; !ok {
			return &MissingTableError{Table: file.Name, Column: column}
		}
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &ArchiveError{Path: zipPath, Table: file.Name, Err: err}
		}

		handle(record, headerMap)

		count++
		if count%100000 == 0 {
			p.logger.Debug("Progress", "file", file.Name, "records", count)
		}
	}

	p.logger.Info("File parsed", "name", file.Name, "records", count)
	return nil
}

// getString safely reads a value from a CSV record
func (p *Parser) getString(record []string, headerMap map[string]int, field string) string {
	if idx, ok := headerMap[field]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

func (p *Parser) parseRoute(record []string, headerMap map[string]int) models.Route {
	return models.Route{
		RouteID:        p.getString(record, headerMap, "route_id"),
		RouteShortName: p.getString(record, headerMap, "route_short_name"),
		RouteLongName:  p.getString(record, headerMap, "route_long_name"),
		RouteType:      p.getString(record, headerMap, "route_type"),
		RouteColor:     p.getString(record, headerMap, "route_color"),
	}
}

func (p *Parser) parseStop(record []string, headerMap map[string]int) models.Stop {
	return models.Stop{
		StopID:   p.getString(record, headerMap, "stop_id"),
		StopName: p.getString(record, headerMap, "stop_name"),
		StopLat:  p.getString(record, headerMap, "stop_lat"),
		StopLon:  p.getString(record, headerMap, "stop_lon"),
	}
}

func (p *Parser) parseTrip(record []string, headerMap map[string]int) models.Trip {
	return models.Trip{
		TripID:    p.getString(record, headerMap, "trip_id"),
		RouteID:   p.getString(record, headerMap, "route_id"),
		ServiceID: p.getString(record, headerMap, "service_id"),
	}
}

func (p *Parser) parseStopTime(record []string, headerMap map[string]int) models.StopTime {
	return models.StopTime{
		TripID:       p.getString(record, headerMap, "trip_id"),
		ArrivalTime:  p.getString(record, headerMap, "arrival_time"),
		StopID:       p.getString(record, headerMap, "stop_id"),
		StopSequence: p.getString(record, headerMap, "stop_sequence"),
	}
}

func (p *Parser) parseCalendar(record []string, headerMap map[string]int) models.CalendarEntry {
	return models.CalendarEntry{
		ServiceID: p.getString(record, headerMap, "service_id"),
		Monday:    p.getString(record, headerMap, "monday"),
		Tuesday:   p.getString(record, headerMap, "tuesday"),
		Wednesday: p.getString(record, headerMap, "wednesday"),
		Thursday:  p.getString(record, headerMap, "thursday"),
		Friday:    p.getString(record, headerMap, "friday"),
		Saturday:  p.getString(record, headerMap, "saturday"),
		Sunday:    p.getString(record, headerMap, "sunday"),
		StartDate: p.getString(record, headerMap, "start_date"),
		EndDate:   p.getString(record, headerMap, "end_date"),
	}
}
