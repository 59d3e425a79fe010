// Package testutil builds small GTFS archives for tests.
package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// Tables maps an archive member name to its full CSV contents.
type Tables map[string]string

// SampleTables is a small feed with two routes inside the San Francisco box,
// one stop outside it and one route whose only stops are outside it.
func SampleTables() Tables {
	return Tables{
		"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type,route_color\n" +
			"R1,SFMTA,1,California,3,005B95\n" +
			"R2,SFMTA,F,Market & Wharves,0,B49A36\n" +
			"R3,SFMTA,PM,Powell/Mason,5,\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"S1,Market St & 4th St,37.75,-122.40\n" +
			"S2,Cañada Blvd,37.76,-122.41\n" +
			"S3,Embarcadero,37.795,-122.394\n" +
			"S4,Daly City BART,37.6999,-122.469\n" +
			"S5,Broken Stop,not-a-lat,-122.41\n",
		"trips.txt": "trip_id,route_id,service_id,trip_headsign\n" +
			"T2,R1,WKDY,Outbound\n" +
			"T1,R1,WKDY,Inbound\n" +
			"T3,R2,SAT,Wharf\n" +
			"T4,R3,WKDY,Downtown\n" +
			"T5,R9,WKDY,Ghost\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"T1,08:15:00,08:15:00,S2,2\n" +
			"T1,08:10:00,08:10:00,S1,1\n" +
			"T1,08:20:00,08:20:00,S3,3\n" +
			"T2,25:10:00,25:10:00,S1,1\n" +
			"T2,bad,bad,S2,2\n" +
			"T3,09:00:00,09:00:00,S3,1\n" +
			"T4,10:00:00,10:00:00,S4,1\n" +
			"T5,11:00:00,11:00:00,S1,1\n",
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"WKDY,1,1,1,1,1,0,0,20250101,20251231\n" +
			"SAT,0,0,0,0,0,1,0,20250101,20251231\n",
	}
}

// WriteZip writes tables as a zip archive under dir and returns its path.
func WriteZip(t testing.TB, dir string, tables Tables) string {
	t.Helper()

	path := filepath.Join(dir, "gtfs.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, contents := range tables {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := w.Write([]byte(contents)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return path
}
