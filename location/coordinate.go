package location

import "fmt"

// Coordinate is an immutable latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// New validates the ranges before handing a Coordinate out. Values outside
// [-90,90] / [-180,180] are an error, never clamped.
func New(latitude, longitude float64) (Coordinate, error) {
	if latitude < -90 || latitude > 90 {
		return Coordinate{}, fmt.Errorf("latitude out of range: %v", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Coordinate{}, fmt.Errorf("longitude out of range: %v", longitude)
	}
	return Coordinate{Latitude: latitude, Longitude: longitude}, nil
}

// String renders the pair the way it is persisted on attendance rows.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}
