package cleaner

import (
	"strconv"
	"strings"

	"github.com/transit-dashboard-data/internal/common/logger"
	"github.com/transit-dashboard-data/pkg/gtfs-static/models"
)

// Cleaner turns a raw feed into the dataset the reports read. Rows that fail
// a per-field parse are dropped without being reported individually; only
// route_type failures abort.
type Cleaner struct {
	logger logger.Logger
	bounds BoundingBox
}

func New(logger logger.Logger, bounds BoundingBox) *Cleaner {
	return &Cleaner{logger: logger, bounds: bounds}
}

func (c *Cleaner) Clean(feed *models.Feed) (*models.Dataset, error) {
	routes, err := c.cleanRoutes(feed.Routes)
	if err != nil {
		return nil, err
	}

	stops := c.cleanStops(feed.Stops)
	trips := c.cleanTrips(feed.Trips, routes)
	stopTimes := c.normalizeStopTimes(feed.StopTimes, trips)

	c.logger.Info("Feed cleaned",
		"routes", len(routes),
		"stops", len(stops),
		"stops_dropped", len(feed.Stops)-len(stops),
		"trips", len(trips),
		"trips_dropped", len(feed.Trips)-len(trips),
		"stop_times", len(stopTimes),
		"stop_times_dropped", len(feed.StopTimes)-len(stopTimes))

	return &models.Dataset{
		Routes:    routes,
		Stops:     stops,
		Trips:     trips,
		StopTimes: stopTimes,
		Calendar:  feed.Calendar,
	}, nil
}

func (c *Cleaner) cleanRoutes(raw []models.Route) ([]models.RouteInfo, error) {
	routes := make([]models.RouteInfo, 0, len(raw))
	for _, r := range raw {
		routeType, err := strconv.Atoi(strings.TrimSpace(r.RouteType))
		if err != nil {
			return nil, &MalformedRouteTypeError{RouteID: r.RouteID, Value: r.RouteType}
		}
		routes = append(routes, models.RouteInfo{
			RouteID:        r.RouteID,
			RouteShortName: r.RouteShortName,
			RouteLongName:  r.RouteLongName,
			RouteType:      routeType,
			RouteColor:     r.RouteColor,
		})
	}
	return routes, nil
}

func (c *Cleaner) cleanStops(raw []models.Stop) []models.StopPoint {
	stops := make([]models.StopPoint, 0, len(raw))
	for _, s := range raw {
		// Unparseable coordinates drop the stop entirely.
		lat, ok := parseCoordinate(s.StopLat)
		if !ok {
			continue
		}
		lon, ok := parseCoordinate(s.StopLon)
		if !ok {
			continue
		}
		if !c.bounds.Contains(lat, lon) {
			continue
		}
		stops = append(stops, models.StopPoint{
			StopID:   s.StopID,
			StopName: s.StopName,
			StopLat:  lat,
			StopLon:  lon,
			LatBin:   GridBin(lat),
			LonBin:   GridBin(lon),
		})
	}
	return stops
}

// cleanTrips keeps trips that name a known route. Trips without a trip_id
// are dropped too.
func (c *Cleaner) cleanTrips(raw []models.Trip, routes []models.RouteInfo) []models.Trip {
	known := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		known[r.RouteID] = struct{}{}
	}

	trips := make([]models.Trip, 0, len(raw))
	for _, t := range raw {
		if t.RouteID == "" || t.TripID == "" {
			continue
		}
		if _, ok := known[t.RouteID]; !ok {
			continue
		}
		trips = append(trips, t)
	}
	return trips
}

// normalizeStopTimes parses arrival times, keeps rows of surviving trips and
// joins each row to its trip's route.
func (c *Cleaner) normalizeStopTimes(raw []models.StopTime, trips []models.Trip) []models.StopArrival {
	routeByTrip := make(map[string]string, len(trips))
	for _, t := range trips {
		if _, seen := routeByTrip[t.TripID]; !seen {
			routeByTrip[t.TripID] = t.RouteID
		}
	}

	arrivals := make([]models.StopArrival, 0, len(raw))
	for _, st := range raw {
		// Unparseable arrival times drop the row before any aggregation.
		seconds, ok := ParseClock(st.ArrivalTime)
		if !ok {
			continue
		}
		routeID, ok := routeByTrip[st.TripID]
		if !ok {
			continue
		}
		arrivals = append(arrivals, models.StopArrival{
			TripID:       st.TripID,
			StopID:       st.StopID,
			StopSequence: st.StopSequence,
			ArrivalTime:  st.ArrivalTime,
			Seconds:      seconds,
			Hour:         HourBucket(seconds),
			RouteID:      routeID,
		})
	}
	return arrivals
}

func parseCoordinate(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
