package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tramova/tramova/modules/tariffs/domain/aggregates/tariff"
)

func scanTariff(row pgx.Row) (tariff.Tariff, error) {
	var (
		id             uuid.UUID
		ownerID        uuid.UUID
		routeID        uuid.UUID
		rateType       string
		method         string
		baseValue      string
		surchargeValue string
		validFrom      time.Time
		validUntil     *time.Time
		createdAt      time.Time
		updatedAt      time.Time
	)
	if err := row.Scan(
		&id, &ownerID, &routeID, &rateType, &method,
		&baseValue, &surchargeValue,
		&validFrom, &validUntil, &createdAt, &updatedAt,
	); err != nil {
		return tariff.Tariff{}, err
	}

	base, err := decimal.NewFromString(baseValue)
	if err != nil {
		return tariff.Tariff{}, err
	}
	surcharge, err := decimal.NewFromString(surchargeValue)
	if err != nil {
		return tariff.Tariff{}, err
	}
	window, err := tariff.NewWindow(validFrom, validUntil)
	if err != nil {
		return tariff.Tariff{}, err
	}

	return tariff.Hydrate(
		id, ownerID, routeID,
		tariff.RateType(rateType), tariff.Method(method),
		base, surcharge, window,
		createdAt, updatedAt,
	), nil
}

func scanTariffs(rows pgx.Rows) ([]tariff.Tariff, error) {
	var out []tariff.Tariff
	for rows.Next() {
		record, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, rows.Err()
}
