package importer

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	// Update persists the session only if the stored version still matches
	// s.Version, then bumps it. A mismatch returns ErrSessionBusy.
	Update(ctx context.Context, s *Session) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
