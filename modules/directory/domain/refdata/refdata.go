package refdata

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the category of reference data a trip row resolves against, and
// also the unit an operator supplies corrections for.
type Kind string

const (
	KindSite      Kind = "site"
	KindPersonnel Kind = "personnel"
	KindVehicle   Kind = "vehicle"
	KindRoute     Kind = "route"
)

func (k Kind) Valid() bool {
	switch k {
	case KindSite, KindPersonnel, KindVehicle, KindRoute:
		return true
	}
	return false
}

type Site struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	name      string
	createdAt time.Time
}

func NewSite(ownerID uuid.UUID, name string) Site {
	return Site{ownerID: ownerID, name: strings.TrimSpace(name)}
}

func HydrateSite(id, ownerID uuid.UUID, name string, createdAt time.Time) Site {
	return Site{id: id, ownerID: ownerID, name: name, createdAt: createdAt}
}

func (s Site) ID() uuid.UUID        { return s.id }
func (s Site) OwnerID() uuid.UUID   { return s.ownerID }
func (s Site) Name() string         { return s.name }
func (s Site) CreatedAt() time.Time { return s.createdAt }

type Personnel struct {
	id         uuid.UUID
	ownerID    uuid.UUID
	identifier string
	fullName   string
	createdAt  time.Time
}

func NewPersonnel(ownerID uuid.UUID, identifier, fullName string) Personnel {
	return Personnel{
		ownerID:    ownerID,
		identifier: strings.TrimSpace(identifier),
		fullName:   strings.TrimSpace(fullName),
	}
}

func HydratePersonnel(id, ownerID uuid.UUID, identifier, fullName string, createdAt time.Time) Personnel {
	return Personnel{id: id, ownerID: ownerID, identifier: identifier, fullName: fullName, createdAt: createdAt}
}

func (p Personnel) ID() uuid.UUID        { return p.id }
func (p Personnel) OwnerID() uuid.UUID   { return p.ownerID }
func (p Personnel) Identifier() string   { return p.identifier }
func (p Personnel) FullName() string     { return p.fullName }
func (p Personnel) CreatedAt() time.Time { return p.createdAt }

type Vehicle struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	plate     string
	createdAt time.Time
}

func NewVehicle(ownerID uuid.UUID, plate string) Vehicle {
	return Vehicle{ownerID: ownerID, plate: strings.TrimSpace(plate)}
}

func HydrateVehicle(id, ownerID uuid.UUID, plate string, createdAt time.Time) Vehicle {
	return Vehicle{id: id, ownerID: ownerID, plate: plate, createdAt: createdAt}
}

func (v Vehicle) ID() uuid.UUID        { return v.id }
func (v Vehicle) OwnerID() uuid.UUID   { return v.ownerID }
func (v Vehicle) Plate() string        { return v.plate }
func (v Vehicle) CreatedAt() time.Time { return v.createdAt }

// Route is a fixed origin/destination pair (a "tramo") carrying one pricing
// class. The same physical pair appears once per class.
type Route struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	origin      string
	destination string
	rateType    string
	createdAt   time.Time
}

func NewRoute(ownerID uuid.UUID, origin, destination, rateType string) Route {
	return Route{
		ownerID:     ownerID,
		origin:      strings.TrimSpace(origin),
		destination: strings.TrimSpace(destination),
		rateType:    strings.TrimSpace(strings.ToLower(rateType)),
	}
}

func HydrateRoute(id, ownerID uuid.UUID, origin, destination, rateType string, createdAt time.Time) Route {
	return Route{
		id:          id,
		ownerID:     ownerID,
		origin:      origin,
		destination: destination,
		rateType:    rateType,
		createdAt:   createdAt,
	}
}

func (r Route) ID() uuid.UUID        { return r.id }
func (r Route) OwnerID() uuid.UUID   { return r.ownerID }
func (r Route) Origin() string       { return r.origin }
func (r Route) Destination() string  { return r.destination }
func (r Route) RateType() string     { return r.rateType }
func (r Route) CreatedAt() time.Time { return r.createdAt }
