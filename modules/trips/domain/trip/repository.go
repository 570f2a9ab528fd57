package trip

import (
	"context"

	gerrors "github.com/go-faster/errors"
)

var (
	ErrNotFound            = gerrors.New("trip not found")
	ErrDuplicateExternalID = gerrors.New("trip with this external id already imported")
)

type FindParams struct {
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, t Trip) (Trip, error)
	List(ctx context.Context, params *FindParams) ([]Trip, error)
}
