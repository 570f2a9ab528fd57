package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/tramova/tramova/pkg/constants"
)

var ErrNoOwner = errors.New("no owner found in context")

// WithOwnerID scopes the context to a single owner (tenant). Every repository
// filters by it; nothing reads owner state from globals.
func WithOwnerID(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.OwnerIDKey, ownerID)
}

func UseOwnerID(ctx context.Context) (uuid.UUID, error) {
	ownerID, ok := ctx.Value(constants.OwnerIDKey).(uuid.UUID)
	if !ok || ownerID == uuid.Nil {
		return uuid.Nil, ErrNoOwner
	}
	return ownerID, nil
}
