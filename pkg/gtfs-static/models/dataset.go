package models

// Dataset is the cleaned working set every report is computed from.
type Dataset struct {
	Routes    []RouteInfo
	Stops     []StopPoint
	Trips     []Trip
	StopTimes []StopArrival
	Calendar  []CalendarEntry
}

// RouteInfo is a route with its route_type coerced to an integer.
type RouteInfo struct {
	RouteID        string
	RouteShortName string
	RouteLongName  string
	RouteType      int
	RouteColor     string
}

// StopPoint is a stop inside the bounding box, with its density grid cell.
type StopPoint struct {
	StopID   string
	StopName string
	StopLat  float64
	StopLon  float64
	LatBin   float64
	LonBin   float64
}

// StopArrival is a stop_times row whose arrival time parsed and whose trip
// survived cleaning.
type StopArrival struct {
	TripID       string
	StopID       string
	StopSequence string
	ArrivalTime  string
	Seconds      int
	Hour         int
	RouteID      string
}
