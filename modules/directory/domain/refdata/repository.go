package refdata

import (
	"context"

	gerrors "github.com/go-faster/errors"
)

var (
	ErrSiteExists      = gerrors.New("site already exists")
	ErrPersonnelExists = gerrors.New("personnel already exists")
	ErrVehicleExists   = gerrors.New("vehicle already exists")
	ErrRouteExists     = gerrors.New("route already exists")
)

type Repository interface {
	CreateSite(ctx context.Context, s Site) (Site, error)
	ListSites(ctx context.Context) ([]Site, error)

	CreatePersonnel(ctx context.Context, p Personnel) (Personnel, error)
	ListPersonnel(ctx context.Context) ([]Personnel, error)

	CreateVehicle(ctx context.Context, v Vehicle) (Vehicle, error)
	ListVehicles(ctx context.Context) ([]Vehicle, error)

	CreateRoute(ctx context.Context, r Route) (Route, error)
	ListRoutes(ctx context.Context) ([]Route, error)
}
