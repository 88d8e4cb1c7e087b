package models

// UnknownBodyPart is the fallback when no history exists for an exercise.
const UnknownBodyPart = "Unknown"

// BodyParts is the canonical catalog used for grouping and validation,
// in display order.
var BodyParts = []string{
	"Chest",
	"Upper Back",
	"Lower Back",
	"Shoulders",
	"Calves",
	"Glutes",
	"Core",
	"Biceps",
	"Triceps",
	"Rotator Cuff",
	"Neck",
	"Forearm",
	"Hamstrings",
	"Quads",
	"Traps",
	"Tibia Dorsi",
	"Knee",
	"Hip",
	"Legs",
}

// IsKnownBodyPart reports whether name is in the canonical catalog.
func IsKnownBodyPart(name string) bool {
	for _, p := range BodyParts {
		if p == name {
			return true
		}
	}
	return false
}

// ValidLaterality reports whether s is one of the two laterality values.
func ValidLaterality(s string) bool {
	return s == string(Unilateral) || s == string(Bilateral)
}
