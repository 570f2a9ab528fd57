package services

import (
	"context"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/eventbus"
)

type DirectoryService struct {
	repo      refdata.Repository
	publisher eventbus.EventBus
}

func NewDirectoryService(repo refdata.Repository, publisher eventbus.EventBus) *DirectoryService {
	return &DirectoryService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *DirectoryService) CreateSite(ctx context.Context, data *refdata.CreateSiteDTO) (refdata.Site, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return refdata.Site{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (refdata.Site, error) {
		return s.repo.CreateSite(txCtx, data.ToEntity(ownerID))
	})
}

func (s *DirectoryService) ListSites(ctx context.Context) ([]refdata.Site, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]refdata.Site, error) {
		return s.repo.ListSites(txCtx)
	})
}

func (s *DirectoryService) CreatePersonnel(ctx context.Context, data *refdata.CreatePersonnelDTO) (refdata.Personnel, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return refdata.Personnel{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (refdata.Personnel, error) {
		return s.repo.CreatePersonnel(txCtx, data.ToEntity(ownerID))
	})
}

func (s *DirectoryService) ListPersonnel(ctx context.Context) ([]refdata.Personnel, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]refdata.Personnel, error) {
		return s.repo.ListPersonnel(txCtx)
	})
}

func (s *DirectoryService) CreateVehicle(ctx context.Context, data *refdata.CreateVehicleDTO) (refdata.Vehicle, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return refdata.Vehicle{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (refdata.Vehicle, error) {
		return s.repo.CreateVehicle(txCtx, data.ToEntity(ownerID))
	})
}

func (s *DirectoryService) ListVehicles(ctx context.Context) ([]refdata.Vehicle, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]refdata.Vehicle, error) {
		return s.repo.ListVehicles(txCtx)
	})
}

func (s *DirectoryService) CreateRoute(ctx context.Context, data *refdata.CreateRouteDTO) (refdata.Route, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return refdata.Route{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (refdata.Route, error) {
		return s.repo.CreateRoute(txCtx, data.ToEntity(ownerID))
	})
}

func (s *DirectoryService) ListRoutes(ctx context.Context) ([]refdata.Route, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]refdata.Route, error) {
		return s.repo.ListRoutes(txCtx)
	})
}

// Snapshot loads every reference collection in one transaction so the import
// pipeline classifies against a single consistent view.
func (s *DirectoryService) Snapshot(ctx context.Context) (refdata.Snapshot, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (refdata.Snapshot, error) {
		sites, err := s.repo.ListSites(txCtx)
		if err != nil {
			return refdata.Snapshot{}, err
		}
		personnel, err := s.repo.ListPersonnel(txCtx)
		if err != nil {
			return refdata.Snapshot{}, err
		}
		vehicles, err := s.repo.ListVehicles(txCtx)
		if err != nil {
			return refdata.Snapshot{}, err
		}
		routes, err := s.repo.ListRoutes(txCtx)
		if err != nil {
			return refdata.Snapshot{}, err
		}
		return refdata.BuildSnapshot(sites, personnel, vehicles, routes), nil
	})
}
