package location

// AccuracyTier classifies a device-reported GPS accuracy radius.
type AccuracyTier string

const (
	AccuracyExcellent  AccuracyTier = "excellent"
	AccuracyGood       AccuracyTier = "good"
	AccuracyAcceptable AccuracyTier = "acceptable"
	AccuracyPoor       AccuracyTier = "poor"
	AccuracyUnknown    AccuracyTier = "unknown"
)

// GradeAccuracy buckets an optional accuracy radius against the configured
// maximum. Tier upper bounds are inclusive. An unreported accuracy is
// accepted: grading is a heuristic, not a security control.
func GradeAccuracy(accuracy *float64, maxMeters float64) (AccuracyTier, bool) {
	switch {
	case accuracy == nil:
		return AccuracyUnknown, true
	case *accuracy <= 5:
		return AccuracyExcellent, true
	case *accuracy <= 20:
		return AccuracyGood, true
	case *accuracy <= maxMeters:
		return AccuracyAcceptable, true
	default:
		return AccuracyPoor, false
	}
}
