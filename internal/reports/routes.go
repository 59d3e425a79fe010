package reports

import (
	"sort"

	"github.com/transit-dashboard-data/pkg/gtfs-static/models"
)

// RouteStats counts distinct trips and distinct served stops per route. One
// row is produced for every route that has at least one trip, ordered by
// route_id; NumStops is nil when none of the route's stop_times survived.
func RouteStats(ds *models.Dataset) []models.RouteStat {
	tripsByRoute := make(map[string]map[string]struct{})
	for _, t := range ds.Trips {
		addDistinct(tripsByRoute, t.RouteID, t.TripID)
	}

	stopsByRoute := make(map[string]map[string]struct{})
	for _, st := range ds.StopTimes {
		if st.RouteID == "" || st.StopID == "" {
			continue
		}
		addDistinct(stopsByRoute, st.RouteID, st.StopID)
	}

	meta := make(map[string]models.RouteInfo, len(ds.Routes))
	for _, r := range ds.Routes {
		if _, seen := meta[r.RouteID]; !seen {
			meta[r.RouteID] = r
		}
	}

	stats := make([]models.RouteStat, 0, len(tripsByRoute))
	for _, routeID := range sortedKeys(tripsByRoute) {
		info := meta[routeID]
		row := models.RouteStat{
			RouteID:        routeID,
			RouteShortName: info.RouteShortName,
			RouteLongName:  info.RouteLongName,
			RouteType:      info.RouteType,
			NumTrips:       len(tripsByRoute[routeID]),
		}
		if stops, ok := stopsByRoute[routeID]; ok {
			n := len(stops)
			row.NumStops = &n
		}
		stats = append(stats, row)
	}
	return stats
}

// TopRoutes returns the limit routes with the most trips. Routes with equal
// trip counts keep their route_stats order.
func TopRoutes(stats []models.RouteStat, limit int) []models.TopRoute {
	ranked := make([]models.RouteStat, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NumTrips > ranked[j].NumTrips
	})

	top := make([]models.TopRoute, 0, limit)
	for _, r := range ranked[:min(limit, len(ranked))] {
		top = append(top, models.TopRoute{
			RouteID:        r.RouteID,
			RouteShortName: r.RouteShortName,
			RouteLongName:  r.RouteLongName,
			NumTrips:       r.NumTrips,
		})
	}
	return top
}

func addDistinct(index map[string]map[string]struct{}, key, value string) {
	set, ok := index[key]
	if !ok {
		set = make(map[string]struct{})
		index[key] = set
	}
	set[value] = struct{}{}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
