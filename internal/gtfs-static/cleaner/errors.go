package cleaner

import "fmt"

// MalformedRouteTypeError is returned when a route's route_type is not an
// integer. Routes cannot be categorised without it, so the run stops.
type MalformedRouteTypeError struct {
	RouteID string
	Value   string
}

func (e *MalformedRouteTypeError) Error() string {
	return fmt.Sprintf("route %s has non-integer route_type %q", e.RouteID, e.Value)
}
