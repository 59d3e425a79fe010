package reports

import (
	"sort"
	"strconv"
	"strings"

	"github.com/transit-dashboard-data/pkg/gtfs-static/models"
)

// HourlyWeekday counts arrivals per hour bucket for trips whose service runs
// on Monday. Monday stands in for a typical weekday; the other day flags are
// not consulted. Hours without arrivals are omitted.
func HourlyWeekday(ds *models.Dataset) []models.HourlyArrivals {
	weekdayServices := make(map[string]struct{})
	for _, c := range ds.Calendar {
		if runsOn(c.Monday) {
			weekdayServices[c.ServiceID] = struct{}{}
		}
	}

	weekdayTrips := make(map[string]struct{})
	for _, t := range ds.Trips {
		if _, ok := weekdayServices[t.ServiceID]; ok {
			weekdayTrips[t.TripID] = struct{}{}
		}
	}

	counts := make(map[int]int)
	for _, st := range ds.StopTimes {
		if _, ok := weekdayTrips[st.TripID]; ok {
			counts[st.Hour]++
		}
	}

	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	rows := make([]models.HourlyArrivals, 0, len(hours))
	for _, h := range hours {
		rows = append(rows, models.HourlyArrivals{Hour: h, NumArrivals: counts[h]})
	}
	return rows
}

// runsOn reads a calendar day flag. Anything other than the integer 1 means
// the service does not run that day.
func runsOn(flag string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(flag))
	return err == nil && n == 1
}
