package location

import (
	"regexp"
	"strconv"
	"strings"
)

// QRPayload is the parsed form of a scanned checkpoint QR. Coordinates is
// nil when the payload carried no usable location.
type QRPayload struct {
	Raw             string      `json:"-"`
	Company         string      `json:"company"`
	Area            string      `json:"area"`
	Code            string      `json:"code"`
	EstablishmentID string      `json:"establishment_id"`
	Coordinates     *Coordinate `json:"coordinates,omitempty"`
	Format          string      `json:"format"`
	Valid           bool        `json:"valid"`
}

// Each extractor tries one known QR layout and reports whether it matched.
// They run in order and the first in-range pair wins; a matching pattern
// with out-of-range numbers is discarded so the next layout gets a chance.
type extractor func(string) (Coordinate, bool)

var (
	// company|area|code|lat,lng|establishment|...
	pipeRecordRe = regexp.MustCompile(`^[^|]*\|[^|]*\|[^|]*\|(-?\d+\.?\d*),\s*(-?\d+\.?\d*)\|`)
	// lat,lng|...
	leadingPairRe = regexp.MustCompile(`^(-?\d+\.?\d*),\s*(-?\d+\.?\d*)\|`)
	// object-like text with "lat": x ... "lng": y
	inlineObjectRe = regexp.MustCompile(`"lat"\s*:\s*(-?\d+\.?\d*)[^}]*"lng"\s*:\s*(-?\d+\.?\d*)`)
	// nothing but the pair
	barePairRe = regexp.MustCompile(`^(-?\d+\.?\d*),\s*(-?\d+\.?\d*)$`)
)

var extractors = []extractor{
	matchPair(pipeRecordRe),
	matchPair(leadingPairRe),
	matchPair(inlineObjectRe),
	matchPair(barePairRe),
}

func matchPair(re *regexp.Regexp) extractor {
	return func(raw string) (Coordinate, bool) {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			return Coordinate{}, false
		}
		lat, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Coordinate{}, false
		}
		lng, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return Coordinate{}, false
		}
		coord, err := New(lat, lng)
		if err != nil {
			return Coordinate{}, false
		}
		return coord, true
	}
}

// ExtractCoordinates pulls checkpoint coordinates out of a free-form QR
// payload. The second return is false when no layout yields an in-range
// pair; that is a QR-validity failure for the caller, not an error.
func ExtractCoordinates(raw string) (Coordinate, bool) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return Coordinate{}, false
	}
	for _, extract := range extractors {
		if coord, ok := extract(clean); ok {
			return coord, true
		}
	}
	return Coordinate{}, false
}

const fieldNotSpecified = "not specified"

// ParseQR splits a payload into its named fields. The standard layout is
// company|area|code|lat,lng|establishment|...; anything else that still
// carries coordinates is reported with placeholder fields.
func ParseQR(raw string) QRPayload {
	payload := QRPayload{Raw: raw}

	clean := strings.TrimSpace(raw)
	if clean == "" {
		return payload
	}

	coord, found := ExtractCoordinates(clean)
	if !found {
		return payload
	}
	payload.Coordinates = &coord
	payload.Valid = true

	parts := strings.Split(clean, "|")
	if len(parts) >= 5 {
		payload.Company = strings.TrimSpace(parts[0])
		payload.Area = strings.TrimSpace(parts[1])
		payload.Code = strings.TrimSpace(parts[2])
		payload.EstablishmentID = strings.TrimSpace(parts[4])
		payload.Format = "standard"
		return payload
	}

	payload.Company = fieldNotSpecified
	payload.Area = fieldNotSpecified
	payload.EstablishmentID = fieldNotSpecified
	// Truncate by runes so a multi-byte payload never ends up split in the
	// middle of a character.
	if runes := []rune(clean); len(runes) > 20 {
		payload.Code = string(runes[:20])
	} else {
		payload.Code = clean
	}
	payload.Format = "coordinates_only"
	return payload
}
