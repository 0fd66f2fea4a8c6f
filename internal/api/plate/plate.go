package plate

import (
	"regexp"
	"strings"
)

const (
	// PlateClassID is the detector class index for license plates.
	PlateClassID = 0

	// MinConfidence is the strict business threshold; detections at or
	// below it are ignored even when the detector surfaced them.
	MinConfidence = 0.5

	// CropMargin is the pixel margin added around a detected box before
	// cropping, clamped to the frame bounds.
	CropMargin = 15
)

// blacklist holds lowercase terms that mark a read as dealer branding or
// watermark text rather than a real plate. Matched as infix against the
// lowercased candidate.
var blacklist = []string{
	"grupo", "premie", "premier", "mx", "com", "agency", "automotriz",
	"auto", "motors", "dealer", "deals", "online", "ventas", "venta",
	"motor", "motorsport", "premler", "romes", "nissan", "sinaloa",
}

var platePattern = regexp.MustCompile(`^[A-Z0-9]{5,8}$`)

// Normalize strips every non-alphanumeric character and uppercases the
// rest. Idempotent.
func Normalize(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r - ('a' - 'A'))
		}
	}
	return sb.String()
}

// IsValid reports whether a normalized candidate looks like a real plate:
// non-empty, free of blacklisted branding terms and matching the 5-8
// uppercase alphanumeric pattern.
func IsValid(candidate string) bool {
	if candidate == "" {
		return false
	}

	lower := strings.ToLower(candidate)
	for _, term := range blacklist {
		if strings.Contains(lower, term) {
			return false
		}
	}

	return platePattern.MatchString(candidate)
}
