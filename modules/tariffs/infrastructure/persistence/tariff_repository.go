package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tramova/tramova/modules/tariffs/domain/aggregates/tariff"
	"github.com/tramova/tramova/pkg/composables"
)

const (
	selectTariffColumns = `
		id, owner_id, route_id, rate_type, method,
		base_value::text, surcharge_value::text,
		valid_from, valid_until, created_at, updated_at`

	getTariffByIDQuery = `
		SELECT ` + selectTariffColumns + `
		FROM tariffs
		WHERE id = $1 AND owner_id = $2`

	getTariffsByKeyQuery = `
		SELECT ` + selectTariffColumns + `
		FROM tariffs
		WHERE owner_id = $1 AND route_id = $2 AND rate_type = $3 AND method = $4
		ORDER BY valid_from`

	getTariffsByRouteQuery = `
		SELECT ` + selectTariffColumns + `
		FROM tariffs
		WHERE owner_id = $1 AND route_id = $2
		ORDER BY rate_type, method, valid_from`

	insertTariffQuery = `
		INSERT INTO tariffs (
			owner_id, route_id, rate_type, method,
			base_value, surcharge_value, valid_from, valid_until
		)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8)
		RETURNING id`

	updateTariffQuery = `
		UPDATE tariffs
		SET base_value = $1::numeric,
		    surcharge_value = $2::numeric,
		    valid_from = $3,
		    valid_until = $4,
		    updated_at = now()
		WHERE id = $5 AND owner_id = $6`
)

type TariffRepository struct{}

func NewTariffRepository() tariff.Repository {
	return &TariffRepository{}
}

func (r *TariffRepository) GetByID(ctx context.Context, id uuid.UUID) (tariff.Tariff, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return tariff.Tariff{}, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tariff.Tariff{}, err
	}

	row := tx.QueryRow(ctx, getTariffByIDQuery, id, ownerID)
	record, err := scanTariff(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tariff.Tariff{}, tariff.ErrNotFound
		}
		return tariff.Tariff{}, err
	}
	return record, nil
}

func (r *TariffRepository) GetByKey(ctx context.Context, params *tariff.FindParams) ([]tariff.Tariff, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, getTariffsByKeyQuery, ownerID, params.RouteID, params.RateType, params.Method)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTariffs(rows)
}

func (r *TariffRepository) GetByRoute(ctx context.Context, routeID uuid.UUID) ([]tariff.Tariff, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, getTariffsByRouteQuery, ownerID, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTariffs(rows)
}

func (r *TariffRepository) Create(ctx context.Context, data tariff.Tariff) (tariff.Tariff, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tariff.Tariff{}, err
	}

	var newID uuid.UUID
	err = tx.QueryRow(
		ctx,
		insertTariffQuery,
		data.OwnerID(),
		data.RouteID(),
		data.RateType(),
		data.Method(),
		data.BaseValue().String(),
		data.SurchargeValue().String(),
		data.Window().From(),
		data.Window().Until(),
	).Scan(&newID)
	if err != nil {
		return tariff.Tariff{}, gerrors.Wrap(err, "failed to create tariff")
	}

	return r.GetByID(ctx, newID)
}

func (r *TariffRepository) Update(ctx context.Context, data tariff.Tariff) error {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(
		ctx,
		updateTariffQuery,
		data.BaseValue().String(),
		data.SurchargeValue().String(),
		data.Window().From(),
		data.Window().Until(),
		data.ID(),
		ownerID,
	)
	if err != nil {
		return gerrors.Wrap(err, "failed to update tariff")
	}
	if tag.RowsAffected() == 0 {
		return tariff.ErrNotFound
	}
	return nil
}
