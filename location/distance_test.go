package location

import (
	"math"
	"testing"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	p := Coordinate{Latitude: -12.0464, Longitude: -77.0428}
	if d := Distance(p, p); d != 0 {
		t.Errorf("distance between identical points = %v, want 0", d)
	}
}

func TestDistance_OneDegreeLatitude(t *testing.T) {
	// One degree of latitude along a meridian is R*pi/180 meters.
	a := Coordinate{Latitude: 0, Longitude: -77}
	b := Coordinate{Latitude: 1, Longitude: -77}
	want := earthRadiusMeters * math.Pi / 180

	if d := Distance(a, b); math.Abs(d-want) > 1 {
		t.Errorf("distance = %.3f, want %.3f ± 1m", d, want)
	}
}

func TestDistance_Antipodal(t *testing.T) {
	a := Coordinate{Latitude: 0, Longitude: 0}
	b := Coordinate{Latitude: 0, Longitude: 180}
	want := earthRadiusMeters * math.Pi

	d := Distance(a, b)
	if math.IsNaN(d) {
		t.Fatal("antipodal distance must not be NaN")
	}
	if math.Abs(d-want) > 1 {
		t.Errorf("distance = %.3f, want %.3f ± 1m", d, want)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := Coordinate{Latitude: -12.0464, Longitude: -77.0428}
	b := Coordinate{Latitude: -12.05, Longitude: -77.05}
	if Distance(a, b) != Distance(b, a) {
		t.Error("distance must be symmetric")
	}
}

func TestDistance_NearbyPoints(t *testing.T) {
	// Two points in central Lima roughly 880m apart.
	a := Coordinate{Latitude: -12.0464, Longitude: -77.0428}
	b := Coordinate{Latitude: -12.0500, Longitude: -77.0500}

	d := Distance(a, b)
	if d < 850 || d > 910 {
		t.Errorf("distance = %.1f, expected roughly 880m", d)
	}
}
