package refdata

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeKey makes lookups case- and diacritic-insensitive: source files are
// wildly inconsistent about casing and accents.
func NormalizeKey(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// RouteKey builds the composite lookup key for a route.
func RouteKey(origin, destination, rateType string) string {
	return NormalizeKey(origin) + "|" + NormalizeKey(destination) + "|" + NormalizeKey(rateType)
}

// Snapshot is a read-only view of an owner's reference data, indexed by
// normalized keys. It is passed explicitly into classification so a stale
// snapshot is visible in the call, never ambient state.
type Snapshot struct {
	SitesByName           map[string]Site
	PersonnelByIdentifier map[string]Personnel
	VehiclesByPlate       map[string]Vehicle
	RoutesByKey           map[string]Route
}

func BuildSnapshot(sites []Site, personnel []Personnel, vehicles []Vehicle, routes []Route) Snapshot {
	snap := Snapshot{
		SitesByName:           make(map[string]Site, len(sites)),
		PersonnelByIdentifier: make(map[string]Personnel, len(personnel)),
		VehiclesByPlate:       make(map[string]Vehicle, len(vehicles)),
		RoutesByKey:           make(map[string]Route, len(routes)),
	}
	for _, s := range sites {
		snap.SitesByName[NormalizeKey(s.Name())] = s
	}
	for _, p := range personnel {
		snap.PersonnelByIdentifier[NormalizeKey(p.Identifier())] = p
	}
	for _, v := range vehicles {
		snap.VehiclesByPlate[NormalizeKey(v.Plate())] = v
	}
	for _, r := range routes {
		snap.RoutesByKey[RouteKey(r.Origin(), r.Destination(), r.RateType())] = r
	}
	return snap
}

func (s Snapshot) Site(name string) (Site, bool) {
	site, ok := s.SitesByName[NormalizeKey(name)]
	return site, ok
}

func (s Snapshot) Personnel(identifier string) (Personnel, bool) {
	p, ok := s.PersonnelByIdentifier[NormalizeKey(identifier)]
	return p, ok
}

func (s Snapshot) Vehicle(plate string) (Vehicle, bool) {
	v, ok := s.VehiclesByPlate[NormalizeKey(plate)]
	return v, ok
}

func (s Snapshot) Route(origin, destination, rateType string) (Route, bool) {
	r, ok := s.RoutesByKey[RouteKey(origin, destination, rateType)]
	return r, ok
}
