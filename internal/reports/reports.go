// Package reports builds the dashboard reports from a cleaned dataset. Every
// builder is a pure function of its input and returns rows in a deterministic
// order, so identical feeds always produce identical reports.
package reports

import "github.com/transit-dashboard-data/pkg/gtfs-static/models"

// TopN is the length of the top routes and top stops rankings.
const TopN = 10

// Set holds one run's reports.
type Set struct {
	RouteStats    []models.RouteStat
	TopRoutes     []models.TopRoute
	HourlyWeekday []models.HourlyArrivals
	StopDensity   []models.DensityCell
	StopsList     []models.StopUsage
	TopStops      []models.StopUsage
	RouteShapes   []models.RouteShape
}

func Build(ds *models.Dataset) *Set {
	stats := RouteStats(ds)
	stops := StopsList(ds)
	return &Set{
		RouteStats:    stats,
		TopRoutes:     TopRoutes(stats, TopN),
		HourlyWeekday: HourlyWeekday(ds),
		StopDensity:   StopDensity(ds),
		StopsList:     stops,
		TopStops:      TopStops(stops, TopN),
		RouteShapes:   RouteShapes(ds),
	}
}
