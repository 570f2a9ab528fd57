package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tramova/tramova/modules/tariffs/domain/aggregates/tariff"
	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/eventbus"
)

type TariffService struct {
	repo      tariff.Repository
	publisher eventbus.EventBus
}

func NewTariffService(repo tariff.Repository, publisher eventbus.EventBus) *TariffService {
	return &TariffService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *TariffService) GetByID(ctx context.Context, id uuid.UUID) (tariff.Tariff, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (tariff.Tariff, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *TariffService) GetByRoute(ctx context.Context, routeID uuid.UUID) ([]tariff.Tariff, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]tariff.Tariff, error) {
		return s.repo.GetByRoute(txCtx, routeID)
	})
}

// Create inserts a new tariff version. The conflict gate runs inside the same
// transaction as the insert, so two overlapping writes cannot both pass.
func (s *TariffService) Create(ctx context.Context, data *tariff.CreateDTO) (tariff.Tariff, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return tariff.Tariff{}, err
	}
	return composables.InTxResult(ctx, func(txCtx context.Context) (tariff.Tariff, error) {
		entity, err := data.ToEntity(ownerID)
		if err != nil {
			return tariff.Tariff{}, err
		}
		if err := s.checkConflict(txCtx, entity, uuid.Nil); err != nil {
			return tariff.Tariff{}, err
		}
		created, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return tariff.Tariff{}, err
		}
		s.publisher.Publish(tariff.NewCreatedEvent(created))
		return created, nil
	})
}

// Update re-validates the window against every sibling except the record
// itself.
func (s *TariffService) Update(ctx context.Context, id uuid.UUID, data *tariff.UpdateDTO) (tariff.Tariff, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (tariff.Tariff, error) {
		existing, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return tariff.Tariff{}, err
		}
		entity, err := data.Apply(existing)
		if err != nil {
			return tariff.Tariff{}, err
		}
		if err := s.checkConflict(txCtx, entity, id); err != nil {
			return tariff.Tariff{}, err
		}
		if err := s.repo.Update(txCtx, entity); err != nil {
			return tariff.Tariff{}, err
		}
		s.publisher.Publish(tariff.NewUpdatedEvent(entity))
		return entity, nil
	})
}

func (s *TariffService) checkConflict(ctx context.Context, entity tariff.Tariff, excludeID uuid.UUID) error {
	key := entity.Key()
	existing, err := s.repo.GetByKey(ctx, &tariff.FindParams{
		RouteID:  key.RouteID,
		RateType: key.RateType,
		Method:   key.Method,
	})
	if err != nil {
		return err
	}
	candidate := tariff.Candidate{
		RateType: key.RateType,
		Method:   key.Method,
		Window:   entity.Window(),
	}
	if hit, found := tariff.FindOverlap(candidate, existing, excludeID); found {
		return &tariff.ConflictError{
			ConflictingID: hit.ID(),
			Description:   describeWindow(hit.Window()),
		}
	}
	return nil
}

// ResolveApplicable returns the single tariff whose window contains onDate.
// More than one match means the write gate failed; that is surfaced as an
// invariant violation, never resolved by picking one.
func (s *TariffService) ResolveApplicable(
	ctx context.Context,
	routeID uuid.UUID,
	rateType tariff.RateType,
	method tariff.Method,
	onDate time.Time,
) (tariff.Tariff, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (tariff.Tariff, error) {
		records, err := s.repo.GetByKey(txCtx, &tariff.FindParams{
			RouteID:  routeID,
			RateType: rateType,
			Method:   method,
		})
		if err != nil {
			return tariff.Tariff{}, err
		}

		var matches []tariff.Tariff
		for _, record := range records {
			if record.Window().Contains(onDate) {
				matches = append(matches, record)
			}
		}

		switch len(matches) {
		case 0:
			return tariff.Tariff{}, tariff.ErrNoApplicable
		case 1:
			return matches[0], nil
		default:
			ids := make([]uuid.UUID, 0, len(matches))
			for _, m := range matches {
				ids = append(ids, m.ID())
			}
			return tariff.Tariff{}, &tariff.InvariantViolationError{
				Key:      tariff.Key{RouteID: routeID, RateType: rateType, Method: method},
				Date:     onDate,
				MatchIDs: ids,
			}
		}
	})
}

// CurrentForDisplay picks the record to show when no date is given: the
// latest-starting unexpired record, or the most recently expired one flagged
// as stale. Display only, never used for billing.
func (s *TariffService) CurrentForDisplay(
	ctx context.Context,
	routeID uuid.UUID,
	rateType tariff.RateType,
	method tariff.Method,
	today time.Time,
) (tariff.Tariff, bool, error) {
	var stale bool
	result, err := composables.InTxResult(ctx, func(txCtx context.Context) (tariff.Tariff, error) {
		records, err := s.repo.GetByKey(txCtx, &tariff.FindParams{
			RouteID:  routeID,
			RateType: rateType,
			Method:   method,
		})
		if err != nil {
			return tariff.Tariff{}, err
		}
		if len(records) == 0 {
			return tariff.Tariff{}, tariff.ErrNotFound
		}

		var best tariff.Tariff
		for _, record := range records {
			if record.Window().ExpiredBy(today) {
				continue
			}
			if best.IsZero() || record.Window().From().After(best.Window().From()) {
				best = record
			}
		}
		if !best.IsZero() {
			return best, nil
		}

		// Everything expired: show the most recently expired version.
		stale = true
		for _, record := range records {
			if best.IsZero() || record.Window().Until().After(*best.Window().Until()) {
				best = record
			}
		}
		return best, nil
	})
	return result, stale, err
}

func describeWindow(w tariff.Window) string {
	if w.Until() == nil {
		return fmt.Sprintf("valid from %s, open-ended", w.From().Format("2006-01-02"))
	}
	return fmt.Sprintf("valid %s..%s", w.From().Format("2006-01-02"), w.Until().Format("2006-01-02"))
}
