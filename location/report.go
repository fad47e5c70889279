package location

import "fmt"

// Config holds the policy thresholds for marking validation.
type Config struct {
	ToleranceMeters   float64
	MaxAccuracyMeters float64
	Region            Bounds
}

// DefaultConfig mirrors the production defaults: 700m geofence, 600m worst
// acceptable GPS accuracy, Peru bounding box.
func DefaultConfig() Config {
	return Config{
		ToleranceMeters:   700,
		MaxAccuracyMeters: 600,
		Region:            PeruBounds,
	}
}

// Report is the single verdict handed to the marking flow. DistanceMeters
// is nil when the QR carried no coordinates: the distance check was never
// evaluated, it did not fail.
type Report struct {
	DistanceMeters   *float64     `json:"distance_meters,omitempty"`
	ToleranceMeters  float64      `json:"tolerance_meters"`
	WithinTolerance  bool         `json:"within_tolerance"`
	QRValid          bool         `json:"qr_valid"`
	Checkpoint       *Coordinate  `json:"checkpoint,omitempty"`
	AccuracyTier     AccuracyTier `json:"accuracy_tier"`
	AccuracyAccepted bool         `json:"accuracy_accepted"`
	WithinRegion     bool         `json:"within_region"`
	OverallValid     bool         `json:"overall_valid"`
	PrimaryIssue     string       `json:"primary_issue"`
}

// Validator evaluates marking requests against the configured policy. It is
// stateless and safe for unlimited concurrent use.
type Validator struct {
	cfg Config
}

func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate builds the full report for a user position, a raw QR payload and
// an optional reported accuracy. The region check runs against the user's
// coordinates, not the checkpoint's.
func (v *Validator) Validate(user Coordinate, qrCode string, accuracy *float64) Report {
	report := Report{ToleranceMeters: v.cfg.ToleranceMeters}

	report.AccuracyTier, report.AccuracyAccepted = GradeAccuracy(accuracy, v.cfg.MaxAccuracyMeters)
	report.WithinRegion = v.cfg.Region.Contains(user)

	checkpoint, found := ExtractCoordinates(qrCode)
	if found {
		report.QRValid = true
		report.Checkpoint = &checkpoint
		distance := Distance(user, checkpoint)
		report.DistanceMeters = &distance
		report.WithinTolerance = distance <= v.cfg.ToleranceMeters
	}

	report.OverallValid = report.QRValid && report.WithinRegion &&
		report.AccuracyAccepted && report.WithinTolerance
	report.PrimaryIssue = v.primaryIssue(report, accuracy)
	return report
}

// primaryIssue picks the single most caller-fixable failure. The ordering
// is fixed: QR, region, accuracy, distance.
func (v *Validator) primaryIssue(r Report, accuracy *float64) string {
	switch {
	case !r.QRValid:
		return "QR code has no valid location coordinates"
	case !r.WithinRegion:
		return "location is outside the allowed region"
	case !r.AccuracyAccepted:
		return fmt.Sprintf("GPS accuracy insufficient: ±%.0fm (requires <%.0fm)",
			*accuracy, v.cfg.MaxAccuracyMeters)
	case !r.WithinTolerance:
		return fmt.Sprintf("too far from the checkpoint: %.1fm (maximum %.0fm)",
			*r.DistanceMeters, v.cfg.ToleranceMeters)
	default:
		return "valid"
	}
}
