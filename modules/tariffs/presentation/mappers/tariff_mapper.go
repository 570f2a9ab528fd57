package mappers

import (
	"time"

	"github.com/tramova/tramova/modules/tariffs/domain/aggregates/tariff"
	"github.com/tramova/tramova/modules/tariffs/presentation/viewmodels"
)

const dateLayout = "2006-01-02"

func TariffToViewModel(entity tariff.Tariff) viewmodels.Tariff {
	var until *string
	if u := entity.Window().Until(); u != nil {
		formatted := u.Format(dateLayout)
		until = &formatted
	}
	return viewmodels.Tariff{
		ID:             entity.ID().String(),
		RouteID:        entity.RouteID().String(),
		RateType:       string(entity.RateType()),
		Method:         string(entity.Method()),
		BaseValue:      entity.BaseValue().String(),
		SurchargeValue: entity.SurchargeValue().String(),
		ValidFrom:      entity.Window().From().Format(dateLayout),
		ValidUntil:     until,
		CreatedAt:      entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:      entity.UpdatedAt().Format(time.RFC3339),
	}
}

func TariffsToViewModels(entities []tariff.Tariff) []viewmodels.Tariff {
	out := make([]viewmodels.Tariff, 0, len(entities))
	for _, entity := range entities {
		out = append(out, TariffToViewModel(entity))
	}
	return out
}
