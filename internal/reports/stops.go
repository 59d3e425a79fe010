package reports

import (
	"sort"

	"github.com/transit-dashboard-data/pkg/gtfs-static/models"
)

type gridCell struct {
	lat, lon float64
}

// StopDensity counts distinct stops in each 0.01° grid cell, ordered by
// latitude bin then longitude bin.
func StopDensity(ds *models.Dataset) []models.DensityCell {
	cells := make(map[gridCell]map[string]struct{})
	for _, s := range ds.Stops {
		key := gridCell{lat: s.LatBin, lon: s.LonBin}
		set, ok := cells[key]
		if !ok {
			set = make(map[string]struct{})
			cells[key] = set
		}
		set[s.StopID] = struct{}{}
	}

	keys := make([]gridCell, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].lat != keys[j].lat {
			return keys[i].lat < keys[j].lat
		}
		return keys[i].lon < keys[j].lon
	})

	rows := make([]models.DensityCell, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, models.DensityCell{LatBin: k.lat, LonBin: k.lon, NumStops: len(cells[k])})
	}
	return rows
}

// StopsList reports every cleaned stop, in feed order, with the number of
// stop_times rows that visit it. Unvisited stops have a zero count.
func StopsList(ds *models.Dataset) []models.StopUsage {
	usage := make(map[string]int)
	for _, st := range ds.StopTimes {
		if st.StopID != "" {
			usage[st.StopID]++
		}
	}

	rows := make([]models.StopUsage, 0, len(ds.Stops))
	for _, s := range ds.Stops {
		rows = append(rows, models.StopUsage{
			StopID:     s.StopID,
			StopName:   s.StopName,
			StopLat:    s.StopLat,
			StopLon:    s.StopLon,
			UsageCount: usage[s.StopID],
		})
	}
	return rows
}

// TopStops returns the limit busiest stops. Equal counts keep list order.
func TopStops(list []models.StopUsage, limit int) []models.StopUsage {
	ranked := make([]models.StopUsage, len(list))
	copy(ranked, list)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].UsageCount > ranked[j].UsageCount
	})
	return ranked[:min(limit, len(ranked))]
}
