package location

import "testing"

func TestGradeAccuracy(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	cases := []struct {
		name     string
		accuracy *float64
		tier     AccuracyTier
		accepted bool
	}{
		{"not reported", nil, AccuracyUnknown, true},
		{"excellent boundary", ptr(5), AccuracyExcellent, true},
		{"good boundary", ptr(20), AccuracyGood, true},
		{"acceptable boundary", ptr(600), AccuracyAcceptable, true},
		{"just past max", ptr(601), AccuracyPoor, false},
		{"tiny", ptr(1.5), AccuracyExcellent, true},
		{"mid", ptr(100), AccuracyAcceptable, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tier, accepted := GradeAccuracy(tc.accuracy, 600)
			if tier != tc.tier || accepted != tc.accepted {
				t.Errorf("got (%s, %v), want (%s, %v)", tier, accepted, tc.tier, tc.accepted)
			}
		})
	}
}
