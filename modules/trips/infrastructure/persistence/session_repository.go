package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
	"github.com/tramova/tramova/modules/trips/domain/importer"
	"github.com/tramova/tramova/pkg/composables"
)

const (
	insertSessionQuery = `
		INSERT INTO import_sessions (
			id, owner_id, status, total_rows,
			initial_success_count, initial_failure_count,
			retry_success_count, retry_failure_count,
			failure_breakdown, failed_rows, pending_rows, processed_kinds,
			version, created_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	getSessionQuery = `
		SELECT id, owner_id, status, total_rows,
		       initial_success_count, initial_failure_count,
		       retry_success_count, retry_failure_count,
		       failure_breakdown, failed_rows, pending_rows, processed_kinds,
		       version, created_at, expires_at
		FROM import_sessions
		WHERE id = $1 AND owner_id = $2`

	// The version predicate is the optimistic guard: a concurrent writer that
	// got there first leaves this statement matching zero rows.
	updateSessionQuery = `
		UPDATE import_sessions
		SET status = $1,
		    initial_success_count = $2,
		    initial_failure_count = $3,
		    retry_success_count = $4,
		    retry_failure_count = $5,
		    failure_breakdown = $6,
		    failed_rows = $7,
		    pending_rows = $8,
		    processed_kinds = $9,
		    version = version + 1
		WHERE id = $10 AND owner_id = $11 AND version = $12`

	deleteExpiredSessionsQuery = `
		DELETE FROM import_sessions
		WHERE expires_at < $1`
)

type SessionRepository struct{}

func NewSessionRepository() importer.SessionRepository {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(ctx context.Context, s *importer.Session) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	doc, err := marshalSessionDoc(s)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		ctx,
		insertSessionQuery,
		s.ID, s.OwnerID, s.Status, s.TotalRows,
		s.InitialSuccessCount, s.InitialFailureCount,
		s.RetrySuccessCount, s.RetryFailureCount,
		doc.breakdown, doc.failed, doc.pending, doc.kinds,
		s.Version, s.CreatedAt, s.ExpiresAt,
	)
	if err != nil {
		return gerrors.Wrap(err, "failed to create import session")
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*importer.Session, error) {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, getSessionQuery, id, ownerID)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, importer.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (r *SessionRepository) Update(ctx context.Context, s *importer.Session) error {
	ownerID, err := composables.UseOwnerID(ctx)
	if err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	doc, err := marshalSessionDoc(s)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(
		ctx,
		updateSessionQuery,
		s.Status,
		s.InitialSuccessCount, s.InitialFailureCount,
		s.RetrySuccessCount, s.RetryFailureCount,
		doc.breakdown, doc.failed, doc.pending, doc.kinds,
		s.ID, ownerID, s.Version,
	)
	if err != nil {
		return gerrors.Wrap(err, "failed to update import session")
	}
	if tag.RowsAffected() == 0 {
		return importer.ErrSessionBusy
	}
	s.Version++
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, deleteExpiredSessionsQuery, now)
	if err != nil {
		return 0, gerrors.Wrap(err, "failed to purge import sessions")
	}
	return tag.RowsAffected(), nil
}

type sessionDoc struct {
	breakdown []byte
	failed    []byte
	pending   []byte
	kinds     []byte
}

func marshalSessionDoc(s *importer.Session) (sessionDoc, error) {
	breakdown, err := json.Marshal(s.FailureBreakdown)
	if err != nil {
		return sessionDoc{}, err
	}
	failed, err := json.Marshal(emptySlice(s.FailedRows))
	if err != nil {
		return sessionDoc{}, err
	}
	pending, err := json.Marshal(emptySlice(s.PendingRows))
	if err != nil {
		return sessionDoc{}, err
	}
	kinds, err := json.Marshal(emptySlice(s.ProcessedKinds))
	if err != nil {
		return sessionDoc{}, err
	}
	return sessionDoc{breakdown: breakdown, failed: failed, pending: pending, kinds: kinds}, nil
}

// emptySlice keeps nil slices as empty json arrays so round-trips stay stable.
func emptySlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func scanSession(row pgx.Row) (*importer.Session, error) {
	var (
		s         importer.Session
		breakdown []byte
		failed    []byte
		pending   []byte
		kinds     []byte
	)
	if err := row.Scan(
		&s.ID, &s.OwnerID, &s.Status, &s.TotalRows,
		&s.InitialSuccessCount, &s.InitialFailureCount,
		&s.RetrySuccessCount, &s.RetryFailureCount,
		&breakdown, &failed, &pending, &kinds,
		&s.Version, &s.CreatedAt, &s.ExpiresAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(breakdown, &s.FailureBreakdown); err != nil {
		return nil, gerrors.Wrap(err, "invalid failure breakdown in storage")
	}
	if err := json.Unmarshal(failed, &s.FailedRows); err != nil {
		return nil, gerrors.Wrap(err, "invalid failed rows in storage")
	}
	if err := json.Unmarshal(pending, &s.PendingRows); err != nil {
		return nil, gerrors.Wrap(err, "invalid pending rows in storage")
	}
	var processed []refdata.Kind
	if err := json.Unmarshal(kinds, &processed); err != nil {
		return nil, gerrors.Wrap(err, "invalid processed kinds in storage")
	}
	s.ProcessedKinds = processed
	return &s, nil
}
