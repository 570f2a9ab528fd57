package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
	"github.com/tramova/tramova/modules/trips/domain/importer"
	"github.com/tramova/tramova/modules/trips/domain/trip"
	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/configuration"
	"github.com/tramova/tramova/pkg/eventbus"
)

// SnapshotProvider yields the owner's full reference data view. Classification
// correctness depends on the snapshot being complete, so every pass fetches a
// fresh one.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (refdata.Snapshot, error)
}

type ImportService struct {
	sessions       importer.SessionRepository
	trips          trip.Repository
	snapshots      SnapshotProvider
	publisher      eventbus.EventBus
	sessionTTL     time.Duration
	failureSamples int
}

func NewImportService(
	sessions importer.SessionRepository,
	trips trip.Repository,
	snapshots SnapshotProvider,
	publisher eventbus.EventBus,
	opts configuration.ImportOptions,
) *ImportService {
	return &ImportService{
		sessions:       sessions,
		trips:          trips,
		snapshots:      snapshots,
		publisher:      publisher,
		sessionTTL:     opts.SessionTTL,
		failureSamples: opts.FailureSamples,
	}
}

// ImportBatch runs the initial classification pass. Accepted rows are
// persisted immediately, one transaction each, so a batch is never
// all-or-nothing: every outcome is tallied into the session and the caller
// always gets a summary, even when every row fails.
func (s *ImportService) ImportBatch(ctx context.Context, rows []importer.Row) (*importer.Session, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Index = i
	}
	now := time.Now()
	session := importer.NewSession(ownerID, len(rows), now, s.sessionTTL)

	snapshot, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return s.failSession(ctx, session, gerrors.Wrap(err, "reference snapshot fetch failed"))
	}

	classifier := importer.NewClassifier(snapshot, now)
	outcomes := make([]importer.Classification, len(rows))
	for i, row := range rows {
		out := classifier.Classify(row)
		if out.Result == importer.ResultAccepted {
			out, err = s.persistAccepted(ctx, ownerID, out)
			if err != nil {
				return s.failSession(ctx, session, err)
			}
		}
		outcomes[i] = out
	}
	importer.ApplyInitial(session, rows, outcomes, s.failureSamples)

	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.sessions.Create(txCtx, session)
	}); err != nil {
		return nil, err
	}
	s.publisher.Publish(importer.NewSessionCreatedEvent(session))
	return session, nil
}

func (s *ImportService) Session(ctx context.Context, id uuid.UUID) (*importer.Session, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (*importer.Session, error) {
		return s.sessions.GetByID(txCtx, id)
	})
}

// Retry reclassifies exactly the pending rows whose missing reasons intersect
// the supplied kinds, against a freshly fetched snapshot. The optimistic save
// at the end rejects a concurrent retry of the same session with
// ErrSessionBusy instead of merging partitions.
func (s *ImportService) Retry(ctx context.Context, id uuid.UUID, kinds []refdata.Kind) (*importer.Session, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return nil, err
	}
	session, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status.Terminal() {
		return nil, importer.ErrSessionFinalized
	}
	for _, kind := range kinds {
		if !kind.Valid() {
			return nil, importer.ErrInvalidKind
		}
		if session.KindProcessed(kind) {
			return nil, importer.ErrKindAlreadyProcessed
		}
	}
	session.Status = importer.StatusRetrying

	snapshot, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return s.failExistingSession(ctx, session, gerrors.Wrap(err, "reference snapshot fetch failed"))
	}

	classifier := importer.NewClassifier(snapshot, time.Now())
	outcomes := make(map[int]importer.Classification, len(session.PendingRows))
	for _, pending := range session.PendingRows {
		if !importer.MissingIntersects(pending.Missing, kinds) {
			continue
		}
		out := classifier.Classify(pending.Payload)
		if out.Result == importer.ResultAccepted {
			out, err = s.persistAccepted(ctx, ownerID, out)
			if err != nil {
				return s.failExistingSession(ctx, session, err)
			}
		}
		outcomes[pending.OriginalIndex] = out
	}
	if err := importer.ApplyRetry(session, kinds, outcomes, s.failureSamples); err != nil {
		return nil, err
	}

	if err := s.updateSession(ctx, session); err != nil {
		return nil, err
	}
	s.publisher.Publish(importer.NewSessionRetriedEvent(session))
	return session, nil
}

func (s *ImportService) ListTrips(ctx context.Context, params *trip.FindParams) ([]trip.Trip, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]trip.Trip, error) {
		return s.trips.List(txCtx, params)
	})
}

// PurgeExpired deletes sessions past their expiry, terminal or not.
func (s *ImportService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int64, error) {
		return s.sessions.DeleteExpired(txCtx, now)
	})
}

// persistAccepted stores the trip for an accepted row. A unique-key hit means
// the external id was imported by an earlier session; that demotes the row to
// a duplicate rejection rather than failing the pass.
func (s *ImportService) persistAccepted(
	ctx context.Context,
	ownerID uuid.UUID,
	out importer.Classification,
) (importer.Classification, error) {
	n := out.Normalized
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		_, err := s.trips.Create(txCtx, trip.New(
			ownerID, n.ExternalID, n.SiteID, n.PersonnelID, n.VehicleID, n.RouteID,
			n.Date, n.Quantity, n.Distance,
		))
		return err
	})
	if err != nil {
		if errors.Is(err, trip.ErrDuplicateExternalID) {
			return importer.Classification{
				Result:  importer.ResultRejected,
				Reason:  importer.ReasonDuplicateExternalID,
				Message: fmt.Sprintf("external id %q was already imported", n.ExternalID),
			}, nil
		}
		return importer.Classification{}, err
	}
	return out, nil
}

// failSession records a pipeline-level fault on a brand new session.
func (s *ImportService) failSession(ctx context.Context, session *importer.Session, cause error) (*importer.Session, error) {
	session.MarkFailed()
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.sessions.Create(txCtx, session)
	}); err != nil {
		return nil, err
	}
	return session, cause
}

func (s *ImportService) failExistingSession(ctx context.Context, session *importer.Session, cause error) (*importer.Session, error) {
	session.MarkFailed()
	if err := s.updateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, cause
}

func (s *ImportService) updateSession(ctx context.Context, session *importer.Session) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.sessions.Update(txCtx, session)
	})
}
