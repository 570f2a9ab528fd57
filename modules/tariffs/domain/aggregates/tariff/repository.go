package tariff

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	RouteID  uuid.UUID
	RateType RateType
	Method   Method
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Tariff, error)
	// GetByKey returns every historical version for the composite key,
	// ordered by valid_from ascending.
	GetByKey(ctx context.Context, params *FindParams) ([]Tariff, error)
	GetByRoute(ctx context.Context, routeID uuid.UUID) ([]Tariff, error)
	Create(ctx context.Context, t Tariff) (Tariff, error)
	Update(ctx context.Context, t Tariff) error
}
