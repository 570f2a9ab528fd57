package tariff

import (
	"github.com/google/uuid"
)

// Candidate is what the overlap check needs to know about a record being
// inserted or edited.
type Candidate struct {
	RateType RateType
	Method   Method
	Window   Window
}

// FindOverlap returns the first existing record whose validity window collides
// with the candidate under the same (rateType, method). Records under a
// different rate type or method never conflict. excludeID skips the record
// being edited. Pure; callers must validate the window beforehand.
func FindOverlap(candidate Candidate, existing []Tariff, excludeID uuid.UUID) (Tariff, bool) {
	for _, record := range existing {
		if excludeID != uuid.Nil && record.ID() == excludeID {
			continue
		}
		if record.RateType() != candidate.RateType || record.Method() != candidate.Method {
			continue
		}
		if record.Window().Overlaps(candidate.Window) {
			return record, true
		}
	}
	return Tariff{}, false
}
