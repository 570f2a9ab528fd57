package trip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trip is one accepted import row: every reference resolved to an id, scalars
// parsed and typed.
type Trip struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	externalID  string
	siteID      uuid.UUID
	personnelID uuid.UUID
	vehicleID   uuid.UUID
	routeID     uuid.UUID
	date        time.Time
	quantity    decimal.Decimal
	distance    decimal.Decimal
	createdAt   time.Time
}

func New(
	ownerID uuid.UUID,
	externalID string,
	siteID, personnelID, vehicleID, routeID uuid.UUID,
	date time.Time,
	quantity, distance decimal.Decimal,
) Trip {
	return Trip{
		ownerID:     ownerID,
		externalID:  externalID,
		siteID:      siteID,
		personnelID: personnelID,
		vehicleID:   vehicleID,
		routeID:     routeID,
		date:        date,
		quantity:    quantity,
		distance:    distance,
	}
}

func Hydrate(
	id, ownerID uuid.UUID,
	externalID string,
	siteID, personnelID, vehicleID, routeID uuid.UUID,
	date time.Time,
	quantity, distance decimal.Decimal,
	createdAt time.Time,
) Trip {
	return Trip{
		id:          id,
		ownerID:     ownerID,
		externalID:  externalID,
		siteID:      siteID,
		personnelID: personnelID,
		vehicleID:   vehicleID,
		routeID:     routeID,
		date:        date,
		quantity:    quantity,
		distance:    distance,
		createdAt:   createdAt,
	}
}

func (t Trip) ID() uuid.UUID             { return t.id }
func (t Trip) OwnerID() uuid.UUID        { return t.ownerID }
func (t Trip) ExternalID() string        { return t.externalID }
func (t Trip) SiteID() uuid.UUID         { return t.siteID }
func (t Trip) PersonnelID() uuid.UUID    { return t.personnelID }
func (t Trip) VehicleID() uuid.UUID      { return t.vehicleID }
func (t Trip) RouteID() uuid.UUID        { return t.routeID }
func (t Trip) Date() time.Time           { return t.date }
func (t Trip) Quantity() decimal.Decimal { return t.quantity }
func (t Trip) Distance() decimal.Decimal { return t.distance }
func (t Trip) CreatedAt() time.Time      { return t.createdAt }
