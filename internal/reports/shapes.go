package reports

import (
	"sort"
	"strconv"
	"strings"

	"github.com/transit-dashboard-data/pkg/gtfs-static/models"
)

// RouteShapes draws each route through the stops of its representative trip,
// the trip with the smallest trip_id by string comparison. Stops that are
// not in the cleaned stop set are skipped, so a route may end up with no
// coordinates at all. Routes are ordered by route_id.
func RouteShapes(ds *models.Dataset) []models.RouteShape {
	representative := make(map[string]string)
	for _, t := range ds.Trips {
		if current, ok := representative[t.RouteID]; !ok || t.TripID < current {
			representative[t.RouteID] = t.TripID
		}
	}

	visitsByTrip := make(map[string][]models.StopArrival)
	for _, st := range ds.StopTimes {
		visitsByTrip[st.TripID] = append(visitsByTrip[st.TripID], st)
	}

	stopsByID := make(map[string]models.StopPoint, len(ds.Stops))
	for _, s := range ds.Stops {
		if _, seen := stopsByID[s.StopID]; !seen {
			stopsByID[s.StopID] = s
		}
	}

	shapes := make([]models.RouteShape, 0, len(representative))
	for _, routeID := range sortedKeys(representative) {
		coords := make([][2]float64, 0)
		for _, stopID := range orderedStops(visitsByTrip[representative[routeID]]) {
			stop, ok := stopsByID[stopID]
			if !ok {
				continue
			}
			coords = append(coords, [2]float64{stop.StopLon, stop.StopLat})
		}
		shapes = append(shapes, models.RouteShape{RouteID: routeID, Coords: coords})
	}
	return shapes
}

type sequencedStop struct {
	sequence int
	stopID   string
}

// orderedStops returns the stop ids of one trip by ascending stop_sequence.
// Visits whose stop_sequence is not an integer are left out.
func orderedStops(visits []models.StopArrival) []string {
	seq := make([]sequencedStop, 0, len(visits))
	for _, v := range visits {
		n, err := strconv.Atoi(strings.TrimSpace(v.StopSequence))
		if err != nil {
			continue
		}
		seq = append(seq, sequencedStop{sequence: n, stopID: v.StopID})
	}

	sort.SliceStable(seq, func(i, j int) bool {
		return seq[i].sequence < seq[j].sequence
	})

	ids := make([]string, len(seq))
	for i, s := range seq {
		ids[i] = s.stopID
	}
	return ids
}
