package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transit-dashboard-data/internal/common/logger"
	"github.com/transit-dashboard-data/internal/testutil"
	"github.com/transit-dashboard-data/pkg/gtfs-static/models"
)

func TestParseZipLoadsRawText(t *testing.T) {
	path := testutil.WriteZip(t, t.TempDir(), testutil.SampleTables())

	feed, err := New(logger.Nop()).ParseZip(context.Background(), path)
	require.NoError(t, err)

	assert.Len(t, feed.Routes, 3)
	assert.Len(t, feed.Stops, 5)
	assert.Len(t, feed.Trips, 5)
	assert.Len(t, feed.StopTimes, 8)
	assert.Len(t, feed.Calendar, 2)

	assert.Equal(t, models.Route{
		RouteID:        "R1",
		RouteShortName: "1",
		RouteLongName:  "California",
		RouteType:      "3",
		RouteColor:     "005B95",
	}, feed.Routes[0])
	assert.Equal(t, "not-a-lat", feed.Stops[4].StopLat, "coordinates stay unparsed")
	assert.Equal(t, "Cañada Blvd", feed.Stops[1].StopName)
	assert.Equal(t, models.StopTime{TripID: "T2", ArrivalTime: "bad", StopID: "S2", StopSequence: "2"}, feed.StopTimes[4])
	assert.Equal(t, "20251231", feed.Calendar[0].EndDate)
}

func TestParseZipMissingArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.zip")

	_, err := New(logger.Nop()).ParseZip(context.Background(), path)

	var archiveErr *ArchiveError
	require.ErrorAs(t, err, &archiveErr)
	assert.Equal(t, path, archiveErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseZipUnreadableArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.zip")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip file"), 0o644))

	_, err := New(logger.Nop()).ParseZip(context.Background(), path)

	var archiveErr *ArchiveError
	assert.ErrorAs(t, err, &archiveErr)
}

func TestParseZipMissingTable(t *testing.T) {
	tables := testutil.SampleTables()
	delete(tables, CalendarFile)
	path := testutil.WriteZip(t, t.TempDir(), tables)

	_, err := New(logger.Nop()).ParseZip(context.Background(), path)

	var missing *MissingTableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, CalendarFile, missing.Table)
	assert.Empty(t, missing.Column)
}

func TestParseZipMissingColumn(t *testing.T) {
	tables := testutil.SampleTables()
	tables[StopTimesFile] = "trip_id,arrival_time,stop_id\nT1,08:00:00,S1\n"
	path := testutil.WriteZip(t, t.TempDir(), tables)

	_, err := New(logger.Nop()).ParseZip(context.Background(), path)

	var missing *MissingTableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, StopTimesFile, missing.Table)
	assert.Equal(t, "stop_sequence", missing.Column)
}

func TestParseZipEmptyTable(t *testing.T) {
	tables := testutil.SampleTables()
	tables[RoutesFile] = ""
	path := testutil.WriteZip(t, t.TempDir(), tables)

	_, err := New(logger.Nop()).ParseZip(context.Background(), path)

	var missing *MissingTableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, RoutesFile, missing.Table)
}

func TestParseZipHeaderHandling(t *testing.T) {
	tables := testutil.SampleTables()
	tables[StopsFile] = "\xef\xbb\xbfstop_id, stop_lon ,stop_name,stop_lat,zone_id\n" +
		"S1,-122.40,\"Market St, Outbound\",37.75,Z1\n" +
		"S2,-122.41\n"
	path := testutil.WriteZip(t, t.TempDir(), tables)

	feed, err := New(logger.Nop()).ParseZip(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, feed.Stops, 2)
	assert.Equal(t, models.Stop{StopID: "S1", StopName: "Market St, Outbound", StopLat: "37.75", StopLon: "-122.40"}, feed.Stops[0])
	assert.Equal(t, models.Stop{StopID: "S2", StopLon: "-122.41"}, feed.Stops[1], "short rows read as empty text")
}

func TestParseZipCancelled(t *testing.T) {
	path := testutil.WriteZip(t, t.TempDir(), testutil.SampleTables())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(logger.Nop()).ParseZip(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseZipTrimsFieldPadding(t *testing.T) {
	tables := testutil.SampleTables()
	tables[TripsFile] = "trip_id,route_id,service_id\n T1 ,R1 ,  WKDY\n"
	path := testutil.WriteZip(t, t.TempDir(), tables)

	feed, err := New(logger.Nop()).ParseZip(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, feed.Trips, 1)
	assert.Equal(t, models.Trip{TripID: "T1", RouteID: "R1", ServiceID: "WKDY"}, feed.Trips[0])
}
