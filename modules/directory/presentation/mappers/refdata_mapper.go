package mappers

import (
	"time"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
	"github.com/tramova/tramova/modules/directory/presentation/viewmodels"
)

func SiteToViewModel(s refdata.Site) viewmodels.Site {
	return viewmodels.Site{
		ID:        s.ID().String(),
		Name:      s.Name(),
		CreatedAt: s.CreatedAt().Format(time.RFC3339),
	}
}

func SitesToViewModels(items []refdata.Site) []viewmodels.Site {
	out := make([]viewmodels.Site, 0, len(items))
	for _, item := range items {
		out = append(out, SiteToViewModel(item))
	}
	return out
}

func PersonnelToViewModel(p refdata.Personnel) viewmodels.Personnel {
	return viewmodels.Personnel{
		ID:         p.ID().String(),
		Identifier: p.Identifier(),
		FullName:   p.FullName(),
		CreatedAt:  p.CreatedAt().Format(time.RFC3339),
	}
}

func PersonnelToViewModels(items []refdata.Personnel) []viewmodels.Personnel {
	out := make([]viewmodels.Personnel, 0, len(items))
	for _, item := range items {
		out = append(out, PersonnelToViewModel(item))
	}
	return out
}

func VehicleToViewModel(v refdata.Vehicle) viewmodels.Vehicle {
	return viewmodels.Vehicle{
		ID:        v.ID().String(),
		Plate:     v.Plate(),
		CreatedAt: v.CreatedAt().Format(time.RFC3339),
	}
}

func VehiclesToViewModels(items []refdata.Vehicle) []viewmodels.Vehicle {
	out := make([]viewmodels.Vehicle, 0, len(items))
	for _, item := range items {
		out = append(out, VehicleToViewModel(item))
	}
	return out
}

func RouteToViewModel(r refdata.Route) viewmodels.Route {
	return viewmodels.Route{
		ID:          r.ID().String(),
		Origin:      r.Origin(),
		Destination: r.Destination(),
		RateType:    r.RateType(),
		CreatedAt:   r.CreatedAt().Format(time.RFC3339),
	}
}

func RoutesToViewModels(items []refdata.Route) []viewmodels.Route {
	out := make([]viewmodels.Route, 0, len(items))
	for _, item := range items {
		out = append(out, RouteToViewModel(item))
	}
	return out
}
