package models

// Feed holds the five GTFS tables as read from the archive. Every field is the
// raw text of its column; coercion happens during cleaning.
type Feed struct {
	Routes    []Route
	Stops     []Stop
	Trips     []Trip
	StopTimes []StopTime
	Calendar  []CalendarEntry
}

type Route struct {
	RouteID        string
	RouteShortName string
	RouteLongName  string
	RouteType      string
	RouteColor     string
}

type Stop struct {
	StopID   string
	StopName string
	StopLat  string
	StopLon  string
}

type Trip struct {
	TripID    string
	RouteID   string
	ServiceID string
}

type StopTime struct {
	TripID       string
	ArrivalTime  string // Format: HH:MM:SS, hours may exceed 23
	StopID       string
	StopSequence string
}

type CalendarEntry struct {
	ServiceID string
	Monday    string
	Tuesday   string
	Wednesday string
	Thursday  string
	Friday    string
	Saturday  string
	Sunday    string
	StartDate string
	EndDate   string
}
