package importer

import "github.com/tramova/tramova/modules/directory/domain/refdata"

// Reason is the closed set of failure codes a classified row can carry. The
// retry matcher works on these values, so free-text reasons are never stored.
type Reason string

const (
	ReasonMissingSite         Reason = "missing-site"
	ReasonMissingPersonnel    Reason = "missing-personnel"
	ReasonMissingVehicle      Reason = "missing-vehicle"
	ReasonMissingRoute        Reason = "missing-route"
	ReasonDuplicateExternalID Reason = "duplicate-external-id"
	ReasonMalformedData       Reason = "malformed-data"
	ReasonStillMissing        Reason = "still-missing"
)

// Kind maps a recoverable reason to the reference-data kind whose correction
// can resolve it. Hard failure reasons map to no kind.
func (r Reason) Kind() (refdata.Kind, bool) {
	switch r {
	case ReasonMissingSite:
		return refdata.KindSite, true
	case ReasonMissingPersonnel:
		return refdata.KindPersonnel, true
	case ReasonMissingVehicle:
		return refdata.KindVehicle, true
	case ReasonMissingRoute:
		return refdata.KindRoute, true
	}
	return "", false
}

func reasonForKind(k refdata.Kind) Reason {
	switch k {
	case refdata.KindSite:
		return ReasonMissingSite
	case refdata.KindPersonnel:
		return ReasonMissingPersonnel
	case refdata.KindVehicle:
		return ReasonMissingVehicle
	case refdata.KindRoute:
		return ReasonMissingRoute
	}
	return ""
}
