package tariff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateType is the pricing class of a route. The two classes are mutually
// exclusive prices for the same physical route.
type RateType string

const (
	RateContracted RateType = "contracted"
	RateIncidental RateType = "incidental"
)

func (t RateType) Valid() bool {
	return t == RateContracted || t == RateIncidental
}

type Method string

const (
	MethodPerDistance Method = "per_distance"
	MethodPerUnitLoad Method = "per_unit_load"
	MethodFixed       Method = "fixed"
)

func (m Method) Valid() bool {
	return m == MethodPerDistance || m == MethodPerUnitLoad || m == MethodFixed
}

// Key is the composite identity under which validity windows must not
// overlap. It is a first-class value, never reassembled ad hoc at read time.
type Key struct {
	RouteID  uuid.UUID
	RateType RateType
	Method   Method
}

type Tariff struct {
	id             uuid.UUID
	ownerID        uuid.UUID
	routeID        uuid.UUID
	rateType       RateType
	method         Method
	baseValue      decimal.Decimal
	surchargeValue decimal.Decimal
	window         Window
	createdAt      time.Time
	updatedAt      time.Time
}

func New(
	ownerID uuid.UUID,
	routeID uuid.UUID,
	rateType RateType,
	method Method,
	baseValue decimal.Decimal,
	surchargeValue decimal.Decimal,
	window Window,
) Tariff {
	return Tariff{
		ownerID:        ownerID,
		routeID:        routeID,
		rateType:       rateType,
		method:         method,
		baseValue:      baseValue,
		surchargeValue: surchargeValue,
		window:         window,
	}
}

func Hydrate(
	id uuid.UUID,
	ownerID uuid.UUID,
	routeID uuid.UUID,
	rateType RateType,
	method Method,
	baseValue decimal.Decimal,
	surchargeValue decimal.Decimal,
	window Window,
	createdAt time.Time,
	updatedAt time.Time,
) Tariff {
	return Tariff{
		id:             id,
		ownerID:        ownerID,
		routeID:        routeID,
		rateType:       rateType,
		method:         method,
		baseValue:      baseValue,
		surchargeValue: surchargeValue,
		window:         window,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (t Tariff) ID() uuid.UUID                   { return t.id }
func (t Tariff) OwnerID() uuid.UUID              { return t.ownerID }
func (t Tariff) RouteID() uuid.UUID              { return t.routeID }
func (t Tariff) RateType() RateType              { return t.rateType }
func (t Tariff) Method() Method                  { return t.method }
func (t Tariff) BaseValue() decimal.Decimal      { return t.baseValue }
func (t Tariff) SurchargeValue() decimal.Decimal { return t.surchargeValue }
func (t Tariff) Window() Window                  { return t.window }
func (t Tariff) CreatedAt() time.Time            { return t.createdAt }
func (t Tariff) UpdatedAt() time.Time            { return t.updatedAt }
func (t Tariff) IsZero() bool                    { return t.id == uuid.Nil && t.routeID == uuid.Nil }

func (t Tariff) Key() Key {
	return Key{RouteID: t.routeID, RateType: t.rateType, Method: t.method}
}
