package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/tramova/tramova/modules/trips/domain/trip"
	"github.com/tramova/tramova/pkg/composables"
)

const (
	insertTripQuery = `
		INSERT INTO trips (
			owner_id, external_id, site_id, personnel_id, vehicle_id, route_id,
			trip_date, quantity, distance
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9::numeric)
		RETURNING id, created_at`

	listTripsQuery = `
		SELECT id, owner_id, external_id, site_id, personnel_id, vehicle_id, route_id,
		       trip_date, quantity::text, distance::text, created_at
		FROM trips
		WHERE owner_id = $1
		ORDER BY trip_date, external_id
		LIMIT $2 OFFSET $3`
)

type TripRepository struct{}

func NewTripRepository() trip.Repository {
	return &TripRepository{}
}

func (r *TripRepository) Create(ctx context.Context, t trip.Trip) (trip.Trip, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return trip.Trip{}, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return trip.Trip{}, err
	}

	var (
		id        uuid.UUID
		createdAt time.Time
	)
	err = tx.QueryRow(
		ctx,
		insertTripQuery,
		ownerID,
		t.ExternalID(),
		t.SiteID(),
		t.PersonnelID(),
		t.VehicleID(),
		t.RouteID(),
		t.Date(),
		t.Quantity().String(),
		t.Distance().String(),
	).Scan(&id, &createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return trip.Trip{}, trip.ErrDuplicateExternalID
		}
		return trip.Trip{}, gerrors.Wrap(err, "failed to create trip")
	}
	return trip.Hydrate(
		id, ownerID, t.ExternalID(),
		t.SiteID(), t.PersonnelID(), t.VehicleID(), t.RouteID(),
		t.Date(), t.Quantity(), t.Distance(), createdAt,
	), nil
}

func (r *TripRepository) List(ctx context.Context, params *trip.FindParams) ([]trip.Trip, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, listTripsQuery, ownerID, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrips(rows)
}

func scanTrips(rows pgx.Rows) ([]trip.Trip, error) {
	var out []trip.Trip
	for rows.Next() {
		var (
			id          uuid.UUID
			ownerID     uuid.UUID
			externalID  string
			siteID      uuid.UUID
			personnelID uuid.UUID
			vehicleID   uuid.UUID
			routeID     uuid.UUID
			date        time.Time
			quantityRaw string
			distanceRaw string
			createdAt   time.Time
		)
		if err := rows.Scan(
			&id, &ownerID, &externalID, &siteID, &personnelID, &vehicleID, &routeID,
			&date, &quantityRaw, &distanceRaw, &createdAt,
		); err != nil {
			return nil, err
		}
		quantity, err := decimal.NewFromString(quantityRaw)
		if err != nil {
			return nil, gerrors.Wrap(err, "invalid quantity in storage")
		}
		distance, err := decimal.NewFromString(distanceRaw)
		if err != nil {
			return nil, gerrors.Wrap(err, "invalid distance in storage")
		}
		out = append(out, trip.Hydrate(
			id, ownerID, externalID, siteID, personnelID, vehicleID, routeID,
			date, quantity, distance, createdAt,
		))
	}
	return out, rows.Err()
}
