package location

import "math"

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance between two points in meters
// using the Haversine formula.
func Distance(a, b Coordinate) float64 {
	latRad1 := a.Latitude * math.Pi / 180
	lonRad1 := a.Longitude * math.Pi / 180
	latRad2 := b.Latitude * math.Pi / 180
	lonRad2 := b.Longitude * math.Pi / 180

	diffLat := latRad2 - latRad1
	diffLon := lonRad2 - lonRad1

	h := math.Sin(diffLat/2)*math.Sin(diffLat/2) +
		math.Cos(latRad1)*math.Cos(latRad2)*
			math.Sin(diffLon/2)*math.Sin(diffLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}
