package importer

import (
	"time"

	"github.com/google/uuid"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
)

type Status string

const (
	StatusProcessing        Status = "processing"
	StatusPendingCorrection Status = "pending_correction"
	StatusRetrying          Status = "retrying"
	StatusCompleted         Status = "completed"
	StatusFailed            Status = "failed"
)

// Terminal reports whether the session accepts no further mutation. Expiry is
// a deletion policy, not a transition, so it is not represented here.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type FailedRow struct {
	OriginalIndex int    `json:"original_index"`
	ExternalID    string `json:"external_id"`
	Reason        Reason `json:"reason"`
	Message       string `json:"message"`
	Payload       Row    `json:"payload"`
}

type PendingRow struct {
	OriginalIndex int      `json:"original_index"`
	ExternalID    string   `json:"external_id"`
	Missing       []Reason `json:"missing"`
	Payload       Row      `json:"payload"`
}

type ReasonTally struct {
	Count   int      `json:"count"`
	Samples []string `json:"samples"`
}

// Session is the persisted state of one batch import. It is stored as a
// self-contained document: failed and pending rows travel inline so the whole
// thing can be inspected, exported or expired in one piece. Version is the
// optimistic guard against concurrent retry requests.
type Session struct {
	ID                  uuid.UUID
	OwnerID             uuid.UUID
	Status              Status
	TotalRows           int
	InitialSuccessCount int
	InitialFailureCount int
	RetrySuccessCount   int
	RetryFailureCount   int
	FailureBreakdown    map[Reason]*ReasonTally
	FailedRows          []FailedRow
	PendingRows         []PendingRow
	ProcessedKinds      []refdata.Kind
	Version             int64
	CreatedAt           time.Time
	ExpiresAt           time.Time
}

func NewSession(ownerID uuid.UUID, totalRows int, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Status:           StatusProcessing,
		TotalRows:        totalRows,
		FailureBreakdown: make(map[Reason]*ReasonTally),
		CreatedAt:        now,
		ExpiresAt:        now.Add(ttl),
	}
}

func (s *Session) KindProcessed(k refdata.Kind) bool {
	for _, processed := range s.ProcessedKinds {
		if processed == k {
			return true
		}
	}
	return false
}

// MarkFailed records a pipeline-level fault. Business outcomes, even
// "every row rejected", never land here.
func (s *Session) MarkFailed() {
	s.Status = StatusFailed
}

func (s *Session) tally(reason Reason, sample string, maxSamples int) {
	t, ok := s.FailureBreakdown[reason]
	if !ok {
		t = &ReasonTally{}
		s.FailureBreakdown[reason] = t
	}
	t.Count++
	if len(t.Samples) < maxSamples {
		t.Samples = append(t.Samples, sample)
	}
}
