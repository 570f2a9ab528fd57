package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
)

const (
	insertSiteQuery = `
		INSERT INTO sites (owner_id, name, name_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	listSitesQuery = `
		SELECT id, owner_id, name, created_at
		FROM sites
		WHERE owner_id = $1
		ORDER BY name_key`

	insertPersonnelQuery = `
		INSERT INTO personnel (owner_id, identifier, identifier_key, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	listPersonnelQuery = `
		SELECT id, owner_id, identifier, full_name, created_at
		FROM personnel
		WHERE owner_id = $1
		ORDER BY identifier_key`

	insertVehicleQuery = `
		INSERT INTO vehicles (owner_id, plate, plate_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	listVehiclesQuery = `
		SELECT id, owner_id, plate, created_at
		FROM vehicles
		WHERE owner_id = $1
		ORDER BY plate_key`

	insertRouteQuery = `
		INSERT INTO routes (owner_id, origin, destination, rate_type, route_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	listRoutesQuery = `
		SELECT id, owner_id, origin, destination, rate_type, created_at
		FROM routes
		WHERE owner_id = $1
		ORDER BY route_key`
)

type DirectoryRepository struct{}

func NewDirectoryRepository() refdata.Repository {
	return &DirectoryRepository{}
}

func (r *DirectoryRepository) CreateSite(ctx context.Context, s refdata.Site) (refdata.Site, error) {
	ownerID, tx, err := useOwnerTx(ctx)
	if err != nil {
		return refdata.Site{}, err
	}

	var (
		id        uuid.UUID
		createdAt = s.CreatedAt()
	)
	err = tx.QueryRow(ctx, insertSiteQuery, ownerID, s.Name(), refdata.NormalizeKey(s.Name())).Scan(&id, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return refdata.Site{}, refdata.ErrSiteExists
		}
		return refdata.Site{}, gerrors.Wrap(err, "failed to create site")
	}
	return refdata.HydrateSite(id, ownerID, s.Name(), createdAt), nil
}

func (r *DirectoryRepository) ListSites(ctx context.Context) ([]refdata.Site, error) {
	ownerID, tx, err := useOwnerTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, listSitesQuery, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSites(rows)
}

func (r *DirectoryRepository) CreatePersonnel(ctx context.Context, p refdata.Personnel) (refdata.Personnel, error) {
	ownerID, tx, err := useOwnerTx(ctx)
	if err != nil {
		return refdata.Personnel{}, err
	}

	var (
		id        uuid.UUID
		createdAt = p.CreatedAt()
	)
	err = tx.QueryRow(
		ctx,
		insertPersonnelQuery,
		ownerID,
		p.Identifier(),
		refdata.NormalizeKey(p.Identifier()),
		p.FullName(),
	).Scan(&id, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return refdata.Personnel{}, refdata.ErrPersonnelExists
		}
		return refdata.Personnel{}, gerrors.Wrap(err, "failed to create personnel")
	}
	return refdata.HydratePersonnel(id, ownerID, p.Identifier(), p.FullName(), createdAt), nil
}

func (r *DirectoryRepository) ListPersonnel(ctx context.Context) ([]refdata.Personnel, error) {
	ownerID, tx, err := useOwnerTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, listPersonnelQuery, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPersonnel(rows)
}

func (r *DirectoryRepository) CreateVehicle(ctx context.Context, v refdata.Vehicle) (refdata.Vehicle, error) {
	ownerID, tx, err := useOwnerTx(ctx)
	if err != nil {
		return refdata.Vehicle{}, err
	}

	var (
		id        uuid.UUID
		createdAt = v.CreatedAt()
	)
	err = tx.QueryRow(ctx, insertVehicleQuery, ownerID, v.Plate(), refdata.NormalizeKey(v.Plate())).Scan(&id, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return refdata.Vehicle{}, refdata.ErrVehicleExists
		}
		return refdata.Vehicle{}, gerrors.Wrap(err, "failed to create vehicle")
	}
	return refdata.HydrateVehicle(id, ownerID, v.Plate(), createdAt), nil
}

func (r *DirectoryRepository) ListVehicles(ctx context.Context) ([]refdata.Vehicle, error) {
	ownerID, tx, err := useOwnerTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, listVehiclesQuery, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func (r *DirectoryRepository) CreateRoute(ctx context.Context, route refdata.Route) (refdata.Route, error) {
	ownerID, tx, err := useOwnerTx(ctx)
	if err != nil {
		return refdata.Route{}, err
	}

	var (
		id        uuid.UUID
		createdAt = route.CreatedAt()
	)
	err = tx.QueryRow(
		ctx,
		insertRouteQuery,
		ownerID,
		route.Origin(),
		route.Destination(),
		route.RateType(),
		refdata.RouteKey(route.Origin(), route.Destination(), route.RateType()),
	).Scan(&id, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return refdata.Route{}, refdata.ErrRouteExists
		}
		return refdata.Route{}, gerrors.Wrap(err, "failed to create route")
	}
	return refdata.HydrateRoute(id, ownerID, route.Origin(), route.Destination(), route.RateType(), createdAt), nil
}

func (r *DirectoryRepository) ListRoutes(ctx context.Context) ([]refdata.Route, error) {
	ownerID, tx, err := useOwnerTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, listRoutesQuery, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRoutes(rows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
