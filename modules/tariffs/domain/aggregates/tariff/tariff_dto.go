package tariff

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tramova/tramova/pkg/constants"
	"github.com/tramova/tramova/pkg/serrors"
)

const dateLayout = "2006-01-02"

type CreateDTO struct {
	RouteID        string  `json:"route_id" validate:"required,uuid"`
	RateType       string  `json:"rate_type" validate:"required"`
	Method         string  `json:"method" validate:"required"`
	BaseValue      string  `json:"base_value" validate:"required"`
	SurchargeValue string  `json:"surcharge_value"`
	ValidFrom      string  `json:"valid_from" validate:"required"`
	ValidUntil     *string `json:"valid_until"`
}

func (d *CreateDTO) Normalize() {
	d.RouteID = strings.TrimSpace(d.RouteID)
	d.RateType = strings.TrimSpace(strings.ToLower(d.RateType))
	d.Method = strings.TrimSpace(strings.ToLower(d.Method))
	d.BaseValue = strings.TrimSpace(d.BaseValue)
	d.SurchargeValue = strings.TrimSpace(d.SurchargeValue)
	d.ValidFrom = strings.TrimSpace(d.ValidFrom)
	if d.ValidUntil != nil {
		v := strings.TrimSpace(*d.ValidUntil)
		if v == "" {
			d.ValidUntil = nil
		} else {
			d.ValidUntil = &v
		}
	}
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	validationErrors := make(serrors.ValidationErrors)
	if errs != nil {
		validationErrors = serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors))
	}

	if d.RateType != "" && !RateType(d.RateType).Valid() {
		validationErrors["RateType"] = serrors.NewInvalidFieldError("rate_type", "unknown rate type")
	}
	if d.Method != "" && !Method(d.Method).Valid() {
		validationErrors["Method"] = serrors.NewInvalidFieldError("method", "unknown calculation method")
	}
	if d.BaseValue != "" {
		if v, err := decimal.NewFromString(d.BaseValue); err != nil || v.IsNegative() {
			validationErrors["BaseValue"] = serrors.NewInvalidFieldError("base_value", "must be a non-negative decimal")
		}
	}
	if d.SurchargeValue != "" {
		if v, err := decimal.NewFromString(d.SurchargeValue); err != nil || v.IsNegative() {
			validationErrors["SurchargeValue"] = serrors.NewInvalidFieldError("surcharge_value", "must be a non-negative decimal")
		}
	}
	if d.ValidFrom != "" {
		if _, err := time.Parse(dateLayout, d.ValidFrom); err != nil {
			validationErrors["ValidFrom"] = serrors.NewInvalidFieldError("valid_from", "expected YYYY-MM-DD")
		}
	}
	if d.ValidUntil != nil {
		if _, err := time.Parse(dateLayout, *d.ValidUntil); err != nil {
			validationErrors["ValidUntil"] = serrors.NewInvalidFieldError("valid_until", "expected YYYY-MM-DD")
		}
	}

	if len(validationErrors) > 0 {
		return validationErrors.Messages(), false
	}
	return map[string]string{}, true
}

// ToEntity builds the aggregate. Callers must run Ok first; range validation
// still happens here so a malformed window can never reach the conflict gate.
func (d *CreateDTO) ToEntity(ownerID uuid.UUID) (Tariff, error) {
	routeID, err := uuid.Parse(d.RouteID)
	if err != nil {
		return Tariff{}, err
	}
	base, err := decimal.NewFromString(d.BaseValue)
	if err != nil {
		return Tariff{}, err
	}
	surcharge := decimal.Zero
	if d.SurchargeValue != "" {
		surcharge, err = decimal.NewFromString(d.SurchargeValue)
		if err != nil {
			return Tariff{}, err
		}
	}
	from, err := time.Parse(dateLayout, d.ValidFrom)
	if err != nil {
		return Tariff{}, err
	}
	var until *time.Time
	if d.ValidUntil != nil {
		parsed, err := time.Parse(dateLayout, *d.ValidUntil)
		if err != nil {
			return Tariff{}, err
		}
		until = &parsed
	}
	window, err := NewWindow(from, until)
	if err != nil {
		return Tariff{}, err
	}
	return New(ownerID, routeID, RateType(d.RateType), Method(d.Method), base, surcharge, window), nil
}

// UpdateDTO carries new values for an existing record. Rate type, method and
// route are immutable once written; only prices and the window can change.
type UpdateDTO struct {
	BaseValue      string  `json:"base_value" validate:"required"`
	SurchargeValue string  `json:"surcharge_value"`
	ValidFrom      string  `json:"valid_from" validate:"required"`
	ValidUntil     *string `json:"valid_until"`
}

func (d *UpdateDTO) Normalize() {
	d.BaseValue = strings.TrimSpace(d.BaseValue)
	d.SurchargeValue = strings.TrimSpace(d.SurchargeValue)
	d.ValidFrom = strings.TrimSpace(d.ValidFrom)
	if d.ValidUntil != nil {
		v := strings.TrimSpace(*d.ValidUntil)
		if v == "" {
			d.ValidUntil = nil
		} else {
			d.ValidUntil = &v
		}
	}
}

func (d *UpdateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	validationErrors := make(serrors.ValidationErrors)
	if errs != nil {
		validationErrors = serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors))
	}
	if d.BaseValue != "" {
		if v, err := decimal.NewFromString(d.BaseValue); err != nil || v.IsNegative() {
			validationErrors["BaseValue"] = serrors.NewInvalidFieldError("base_value", "must be a non-negative decimal")
		}
	}
	if d.SurchargeValue != "" {
		if v, err := decimal.NewFromString(d.SurchargeValue); err != nil || v.IsNegative() {
			validationErrors["SurchargeValue"] = serrors.NewInvalidFieldError("surcharge_value", "must be a non-negative decimal")
		}
	}
	if d.ValidFrom != "" {
		if _, err := time.Parse(dateLayout, d.ValidFrom); err != nil {
			validationErrors["ValidFrom"] = serrors.NewInvalidFieldError("valid_from", "expected YYYY-MM-DD")
		}
	}
	if d.ValidUntil != nil {
		if _, err := time.Parse(dateLayout, *d.ValidUntil); err != nil {
			validationErrors["ValidUntil"] = serrors.NewInvalidFieldError("valid_until", "expected YYYY-MM-DD")
		}
	}

	if len(validationErrors) > 0 {
		return validationErrors.Messages(), false
	}
	return map[string]string{}, true
}

// Apply returns a copy of the existing record with the updated values.
func (d *UpdateDTO) Apply(existing Tariff) (Tariff, error) {
	base, err := decimal.NewFromString(d.BaseValue)
	if err != nil {
		return Tariff{}, err
	}
	surcharge := decimal.Zero
	if d.SurchargeValue != "" {
		surcharge, err = decimal.NewFromString(d.SurchargeValue)
		if err != nil {
			return Tariff{}, err
		}
	}
	from, err := time.Parse(dateLayout, d.ValidFrom)
	if err != nil {
		return Tariff{}, err
	}
	var until *time.Time
	if d.ValidUntil != nil {
		parsed, err := time.Parse(dateLayout, *d.ValidUntil)
		if err != nil {
			return Tariff{}, err
		}
		until = &parsed
	}
	window, err := NewWindow(from, until)
	if err != nil {
		return Tariff{}, err
	}
	return Hydrate(
		existing.ID(),
		existing.OwnerID(),
		existing.RouteID(),
		existing.RateType(),
		existing.Method(),
		base,
		surcharge,
		window,
		existing.CreatedAt(),
		existing.UpdatedAt(),
	), nil
}
