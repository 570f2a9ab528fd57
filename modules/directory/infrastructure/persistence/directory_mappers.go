package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/repo"
)

func useOwnerTx(ctx context.Context) (uuid.UUID, repo.Tx, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return uuid.Nil, nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return ownerID, tx, nil
}

func scanSites(rows pgx.Rows) ([]refdata.Site, error) {
	var out []refdata.Site
	for rows.Next() {
		var (
			id        uuid.UUID
			ownerID   uuid.UUID
			name      string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &ownerID, &name, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, refdata.HydrateSite(id, ownerID, name, createdAt))
	}
	return out, rows.Err()
}

func scanPersonnel(rows pgx.Rows) ([]refdata.Personnel, error) {
	var out []refdata.Personnel
	for rows.Next() {
		var (
			id         uuid.UUID
			ownerID    uuid.UUID
			identifier string
			fullName   string
			createdAt  time.Time
		)
		if err := rows.Scan(&id, &ownerID, &identifier, &fullName, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, refdata.HydratePersonnel(id, ownerID, identifier, fullName, createdAt))
	}
	return out, rows.Err()
}

func scanVehicles(rows pgx.Rows) ([]refdata.Vehicle, error) {
	var out []refdata.Vehicle
	for rows.Next() {
		var (
			id        uuid.UUID
			ownerID   uuid.UUID
			plate     string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &ownerID, &plate, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, refdata.HydrateVehicle(id, ownerID, plate, createdAt))
	}
	return out, rows.Err()
}

func scanRoutes(rows pgx.Rows) ([]refdata.Route, error) {
	var out []refdata.Route
	for rows.Next() {
		var (
			id          uuid.UUID
			ownerID     uuid.UUID
			origin      string
			destination string
			rateType    string
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &ownerID, &origin, &destination, &rateType, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, refdata.HydrateRoute(id, ownerID, origin, destination, rateType, createdAt))
	}
	return out, rows.Err()
}
