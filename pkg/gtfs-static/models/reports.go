package models

type RouteStat struct {
	RouteID        string `json:"route_id"`
	RouteShortName string `json:"route_short_name"`
	RouteLongName  string `json:"route_long_name"`
	RouteType      int    `json:"route_type"`
	NumStops       *int   `json:"num_stops"` // nil when no stop_times reference the route
	NumTrips       int    `json:"num_trips"`
}

type TopRoute struct {
	RouteID        string `json:"route_id"`
	RouteShortName string `json:"route_short_name"`
	RouteLongName  string `json:"route_long_name"`
	NumTrips       int    `json:"num_trips"`
}

type HourlyArrivals struct {
	Hour        int `json:"hour"`
	NumArrivals int `json:"num_arrivals"`
}

type DensityCell struct {
	LatBin   float64 `json:"lat_bin"`
	LonBin   float64 `json:"lon_bin"`
	NumStops int     `json:"num_stops"`
}

type StopUsage struct {
	StopID     string  `json:"stop_id"`
	StopName   string  `json:"stop_name"`
	StopLat    float64 `json:"stop_lat"`
	StopLon    float64 `json:"stop_lon"`
	UsageCount int     `json:"usage_count"`
}

// RouteShape is the stop-by-stop polyline of a route's representative trip.
// Each coordinate is [longitude, latitude].
type RouteShape struct {
	RouteID string       `json:"route_id"`
	Coords  [][2]float64 `json:"coords"`
}
