package reports

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transit-dashboard-data/pkg/gtfs-static/models"
)

func arrival(tripID, routeID, stopID, seq string, hour int) models.StopArrival {
	return models.StopArrival{
		TripID:       tripID,
		RouteID:      routeID,
		StopID:       stopID,
		StopSequence: seq,
		Seconds:      hour * 3600,
		Hour:         hour,
	}
}

func stop(id string, lat, lon, latBin, lonBin float64) models.StopPoint {
	return models.StopPoint{StopID: id, StopName: "Stop " + id, StopLat: lat, StopLon: lon, LatBin: latBin, LonBin: lonBin}
}

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		Routes: []models.RouteInfo{
			{RouteID: "R2", RouteShortName: "F", RouteLongName: "Market & Wharves", RouteType: 0},
			{RouteID: "R1", RouteShortName: "1", RouteLongName: "California", RouteType: 3},
			{RouteID: "R3", RouteShortName: "PM", RouteLongName: "Powell/Mason", RouteType: 5},
			{RouteID: "R4", RouteShortName: "X", RouteLongName: "No trips", RouteType: 3},
		},
		Stops: []models.StopPoint{
			stop("S1", 37.75, -122.40, 37.75, -122.4),
			stop("S2", 37.751, -122.401, 37.75, -122.41),
			stop("S3", 37.795, -122.394, 37.79, -122.4),
		},
		Trips: []models.Trip{
			{TripID: "T9", RouteID: "R1", ServiceID: "WKDY"},
			{TripID: "T10", RouteID: "R1", ServiceID: "WKDY"},
			{TripID: "T3", RouteID: "R2", ServiceID: "SAT"},
			{TripID: "T4", RouteID: "R3", ServiceID: "WKDY"},
		},
		StopTimes: []models.StopArrival{
			arrival("T10", "R1", "S2", "2", 8),
			arrival("T10", "R1", "S1", "1", 8),
			arrival("T10", "R1", "S3", "x", 8),
			arrival("T9", "R1", "S1", "1", 1),
			arrival("T9", "R1", "S1", "2", 9),
			arrival("T3", "R2", "S3", "1", 9),
		},
		Calendar: []models.CalendarEntry{
			{ServiceID: "WKDY", Monday: "1", Tuesday: "1"},
			{ServiceID: "SAT", Monday: "0", Tuesday: "1", Saturday: "1"},
		},
	}
}

func TestRouteStats(t *testing.T) {
	stats := RouteStats(sampleDataset())

	require.Len(t, stats, 3, "routes without trips are not reported")
	assert.Equal(t, []string{"R1", "R2", "R3"}, []string{stats[0].RouteID, stats[1].RouteID, stats[2].RouteID})

	assert.Equal(t, "California", stats[0].RouteLongName)
	assert.Equal(t, 3, stats[0].RouteType)
	assert.Equal(t, 2, stats[0].NumTrips)
	require.NotNil(t, stats[0].NumStops)
	assert.Equal(t, 3, *stats[0].NumStops)

	assert.Equal(t, 1, stats[1].NumTrips)
	require.NotNil(t, stats[1].NumStops)
	assert.Equal(t, 1, *stats[1].NumStops)

	assert.Equal(t, 1, stats[2].NumTrips)
	assert.Nil(t, stats[2].NumStops, "route with no surviving stop_times")
}

func TestTopRoutesStableOnTies(t *testing.T) {
	var stats []models.RouteStat
	for i := 0; i < 12; i++ {
		stats = append(stats, models.RouteStat{RouteID: fmt.Sprintf("R%02d", i), NumTrips: i % 3})
	}

	top := TopRoutes(stats, TopN)

	require.Len(t, top, 10)
	var ids []string
	for _, r := range top {
		ids = append(ids, r.RouteID)
	}
	assert.Equal(t, []string{"R02", "R05", "R08", "R11", "R01", "R04", "R07", "R10", "R00", "R03"}, ids)
}

func TestTopRoutesShortInput(t *testing.T) {
	top := TopRoutes(RouteStats(sampleDataset()), TopN)

	require.Len(t, top, 3)
	assert.Equal(t, models.TopRoute{RouteID: "R1", RouteShortName: "1", RouteLongName: "California", NumTrips: 2}, top[0])
	assert.Equal(t, "R2", top[1].RouteID)
	assert.Equal(t, "R3", top[2].RouteID)
}

func TestHourlyWeekdayUsesMondayOnly(t *testing.T) {
	rows := HourlyWeekday(sampleDataset())

	assert.Equal(t, []models.HourlyArrivals{
		{Hour: 1, NumArrivals: 1},
		{Hour: 8, NumArrivals: 3},
		{Hour: 9, NumArrivals: 1},
	}, rows)

	total := 0
	for _, r := range rows {
		total += r.NumArrivals
	}
	assert.Equal(t, 5, total, "SAT service runs Tuesday but not Monday")
}

func TestHourlyWeekdayIgnoresMalformedFlags(t *testing.T) {
	ds := sampleDataset()
	ds.Calendar = []models.CalendarEntry{{ServiceID: "WKDY", Monday: "yes"}}

	assert.Empty(t, HourlyWeekday(ds))
}

func TestStopDensity(t *testing.T) {
	ds := sampleDataset()
	ds.Stops = append(ds.Stops, stop("S1", 37.75, -122.40, 37.75, -122.4))

	assert.Equal(t, []models.DensityCell{
		{LatBin: 37.75, LonBin: -122.41, NumStops: 1},
		{LatBin: 37.75, LonBin: -122.4, NumStops: 1},
		{LatBin: 37.79, LonBin: -122.4, NumStops: 1},
	}, StopDensity(ds))
}

func TestStopsList(t *testing.T) {
	rows := StopsList(sampleDataset())

	require.Len(t, rows, 3)
	assert.Equal(t, models.StopUsage{StopID: "S1", StopName: "Stop S1", StopLat: 37.75, StopLon: -122.40, UsageCount: 3}, rows[0])
	assert.Equal(t, 1, rows[1].UsageCount)
	assert.Equal(t, 2, rows[2].UsageCount)

	ds := sampleDataset()
	ds.StopTimes = nil
	for _, r := range StopsList(ds) {
		assert.Zero(t, r.UsageCount)
	}
}

func TestTopStops(t *testing.T) {
	list := []models.StopUsage{
		{StopID: "A", UsageCount: 1},
		{StopID: "B", UsageCount: 5},
		{StopID: "C", UsageCount: 1},
		{StopID: "D", UsageCount: 5},
	}

	top := TopStops(list, 3)

	assert.Equal(t, []string{"B", "D", "A"}, []string{top[0].StopID, top[1].StopID, top[2].StopID})
	assert.Equal(t, "A", list[0].StopID, "input is not reordered")
}

func TestRouteShapes(t *testing.T) {
	shapes := RouteShapes(sampleDataset())

	require.Len(t, shapes, 3)

	// "T10" < "T9" as strings, so T10 represents R1. Its S3 visit has a
	// non-integer sequence and is left out.
	assert.Equal(t, models.RouteShape{
		RouteID: "R1",
		Coords:  [][2]float64{{-122.40, 37.75}, {-122.401, 37.751}},
	}, shapes[0])
	assert.Equal(t, [][2]float64{{-122.394, 37.795}}, shapes[1].Coords)

	assert.Equal(t, "R3", shapes[2].RouteID)
	assert.NotNil(t, shapes[2].Coords)
	assert.Empty(t, shapes[2].Coords)
}

func TestRouteShapesSkipsStopsOutsideBox(t *testing.T) {
	ds := sampleDataset()
	ds.StopTimes = append(ds.StopTimes,
		arrival("T4", "R3", "OUTSIDE", "1", 10),
		arrival("T4", "R3", "S1", "2", 10),
	)

	shapes := RouteShapes(ds)

	assert.Equal(t, [][2]float64{{-122.40, 37.75}}, shapes[2].Coords)
}

func TestBuildIsDeterministic(t *testing.T) {
	first := Build(sampleDataset())
	second := Build(sampleDataset())

	assert.Equal(t, first, second)
	assert.Len(t, first.TopStops, 3)
}
