package refdata

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tramova/tramova/pkg/constants"
	"github.com/tramova/tramova/pkg/serrors"
)

type CreateSiteDTO struct {
	Name string `json:"name" validate:"required"`
}

func (d *CreateSiteDTO) Ok() (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)
	return validateStruct(d)
}

func (d *CreateSiteDTO) ToEntity(ownerID uuid.UUID) Site {
	return NewSite(ownerID, d.Name)
}

type CreatePersonnelDTO struct {
	Identifier string `json:"identifier" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
}

func (d *CreatePersonnelDTO) Ok() (map[string]string, bool) {
	d.Identifier = strings.TrimSpace(d.Identifier)
	d.FullName = strings.TrimSpace(d.FullName)
	return validateStruct(d)
}

func (d *CreatePersonnelDTO) ToEntity(ownerID uuid.UUID) Personnel {
	return NewPersonnel(ownerID, d.Identifier, d.FullName)
}

type CreateVehicleDTO struct {
	Plate string `json:"plate" validate:"required"`
}

func (d *CreateVehicleDTO) Ok() (map[string]string, bool) {
	d.Plate = strings.TrimSpace(d.Plate)
	return validateStruct(d)
}

func (d *CreateVehicleDTO) ToEntity(ownerID uuid.UUID) Vehicle {
	return NewVehicle(ownerID, d.Plate)
}

type CreateRouteDTO struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	RateType    string `json:"rate_type" validate:"required"`
}

func (d *CreateRouteDTO) Ok() (map[string]string, bool) {
	d.Origin = strings.TrimSpace(d.Origin)
	d.Destination = strings.TrimSpace(d.Destination)
	d.RateType = strings.TrimSpace(strings.ToLower(d.RateType))
	fields, ok := validateStruct(d)
	if !ok {
		return fields, false
	}
	if d.RateType != "contracted" && d.RateType != "incidental" {
		return map[string]string{"RateType": "unknown rate type"}, false
	}
	return map[string]string{}, true
}

func (d *CreateRouteDTO) ToEntity(ownerID uuid.UUID) Route {
	return NewRoute(ownerID, d.Origin, d.Destination, d.RateType)
}

func validateStruct(dto any) (map[string]string, bool) {
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return map[string]string{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors)).Messages(), false
}
