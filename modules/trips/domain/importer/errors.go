package importer

import gerrors "github.com/go-faster/errors"

var (
	ErrSessionNotFound      = gerrors.New("import session not found")
	ErrSessionBusy          = gerrors.New("import session is being modified by another request")
	ErrSessionFinalized     = gerrors.New("import session is in a terminal state")
	ErrKindAlreadyProcessed = gerrors.New("correction kind already retried for this session")
	ErrInvalidKind          = gerrors.New("unknown correction kind")
)
