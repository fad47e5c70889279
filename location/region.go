package location

// Bounds is a rectangular bounding box in decimal degrees. The zero value
// means the region check is disabled and every coordinate passes; that is
// the deliberate permissive default so a misconfigured box never blocks
// legitimate marking.
type Bounds struct {
	South float64
	North float64
	West  float64
	East  float64
}

// PeruBounds approximates the national territory. No polygon precision is
// claimed; this only rejects obviously foreign coordinates.
var PeruBounds = Bounds{South: -18.5, North: 0.5, West: -81.5, East: -68.0}

func (b Bounds) enabled() bool {
	return b != Bounds{}
}

// Contains reports whether the coordinate lies inside the box, edges
// included.
func (b Bounds) Contains(c Coordinate) bool {
	if !b.enabled() {
		return true
	}
	return b.South <= c.Latitude && c.Latitude <= b.North &&
		b.West <= c.Longitude && c.Longitude <= b.East
}
