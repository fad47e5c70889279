package helper

import "testing"

func TestTimeToMinutes(t *testing.T) {
	cases := map[string]float64{
		"08:30:00": 510,
		"00:00:00": 0,
		"17:45":    1065,
		"garbage":  0,
	}
	for in, want := range cases {
		if got := timeToMinutes(in); got != want {
			t.Errorf("timeToMinutes(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMinutesToTime(t *testing.T) {
	cases := map[float64]string{
		510:  "08:30",
		0:    "00:00",
		1065: "17:45",
		-5:   "00:00",
		1500: "01:00", // wraps past midnight
	}
	for in, want := range cases {
		if got := minutesToTime(in); got != want {
			t.Errorf("minutesToTime(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPredictExitTime_NoHistory(t *testing.T) {
	if _, err := PredictExitTime(nil, "08:30:00"); err == nil {
		t.Error("expected an error without training data")
	}
}
