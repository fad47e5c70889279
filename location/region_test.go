package location

import "testing"

func TestPeruBounds_Contains(t *testing.T) {
	if !PeruBounds.Contains(Coordinate{Latitude: -12.0, Longitude: -77.0}) {
		t.Error("Lima must be inside the default bounds")
	}
	if PeruBounds.Contains(Coordinate{Latitude: 40.0, Longitude: -3.0}) {
		t.Error("Madrid must be outside the default bounds")
	}
}

func TestBounds_EdgesInclusive(t *testing.T) {
	if !PeruBounds.Contains(Coordinate{Latitude: -18.5, Longitude: -68.0}) {
		t.Error("box edges must count as inside")
	}
}

func TestBounds_ZeroValueFailsOpen(t *testing.T) {
	var disabled Bounds
	if !disabled.Contains(Coordinate{Latitude: 89.9, Longitude: 179.9}) {
		t.Error("zero-value bounds must accept everything")
	}
}
