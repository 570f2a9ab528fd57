package importer

import (
	"fmt"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
)

// ApplyInitial folds the first classification pass into the session. Outcomes
// must be parallel to rows and in input order, so originalIndex assembly is
// deterministic even if classification itself ever runs concurrently.
func ApplyInitial(s *Session, rows []Row, outcomes []Classification, maxSamples int) {
	for i, out := range outcomes {
		row := rows[i]
		switch out.Result {
		case ResultAccepted:
			s.InitialSuccessCount++
		case ResultRejected:
			s.InitialFailureCount++
			s.FailedRows = append(s.FailedRows, FailedRow{
				OriginalIndex: row.Index,
				ExternalID:    row.ExternalID,
				Reason:        out.Reason,
				Message:       out.Message,
				Payload:       row,
			})
			s.tally(out.Reason, rowSample(row), maxSamples)
		case ResultPending:
			s.PendingRows = append(s.PendingRows, PendingRow{
				OriginalIndex: row.Index,
				ExternalID:    row.ExternalID,
				Missing:       out.Missing,
				Payload:       row,
			})
			for _, reason := range out.Missing {
				s.tally(reason, rowSample(row), maxSamples)
			}
		}
	}

	if len(s.PendingRows) == 0 {
		s.Status = StatusCompleted
	} else {
		s.Status = StatusPendingCorrection
	}
}

// ApplyRetry folds one correction pass for the supplied kinds. Outcomes are
// keyed by originalIndex and cover exactly the pending rows whose missing
// reasons intersect the kinds; every other pending row must be absent from
// outcomes and is carried over untouched.
//
// A row that is still pending after all of its missing kinds have had their
// one retry is closed out as a still-missing failure: kinds are retryable once
// per session, so nothing can resolve it anymore.
func ApplyRetry(s *Session, kinds []refdata.Kind, outcomes map[int]Classification, maxSamples int) error {
	if s.Status.Terminal() {
		return ErrSessionFinalized
	}
	for _, kind := range kinds {
		if !kind.Valid() {
			return ErrInvalidKind
		}
		if s.KindProcessed(kind) {
			return ErrKindAlreadyProcessed
		}
	}

	processed := make(map[refdata.Kind]struct{}, len(s.ProcessedKinds)+len(kinds))
	for _, k := range s.ProcessedKinds {
		processed[k] = struct{}{}
	}
	for _, k := range kinds {
		if _, ok := processed[k]; !ok {
			processed[k] = struct{}{}
			s.ProcessedKinds = append(s.ProcessedKinds, k)
		}
	}

	remaining := make([]PendingRow, 0, len(s.PendingRows))
	for _, pending := range s.PendingRows {
		out, reclassified := outcomes[pending.OriginalIndex]
		if !reclassified {
			remaining = append(remaining, pending)
			continue
		}
		switch out.Result {
		case ResultAccepted:
			s.RetrySuccessCount++
		case ResultRejected:
			s.RetryFailureCount++
			s.FailedRows = append(s.FailedRows, FailedRow{
				OriginalIndex: pending.OriginalIndex,
				ExternalID:    pending.ExternalID,
				Reason:        out.Reason,
				Message:       out.Message,
				Payload:       pending.Payload,
			})
			s.tally(out.Reason, rowSample(pending.Payload), maxSamples)
		case ResultPending:
			if allKindsProcessed(out.Missing, processed) {
				s.RetryFailureCount++
				s.FailedRows = append(s.FailedRows, FailedRow{
					OriginalIndex: pending.OriginalIndex,
					ExternalID:    pending.ExternalID,
					Reason:        ReasonStillMissing,
					Message:       "references still unresolved after correction",
					Payload:       pending.Payload,
				})
				s.tally(ReasonStillMissing, rowSample(pending.Payload), maxSamples)
			} else {
				pending.Missing = out.Missing
				remaining = append(remaining, pending)
			}
		}
	}
	s.PendingRows = remaining

	if len(s.PendingRows) == 0 {
		s.Status = StatusCompleted
	} else {
		s.Status = StatusPendingCorrection
	}
	return nil
}

// MissingIntersects reports whether a pending row waits on any of the kinds.
func MissingIntersects(missing []Reason, kinds []refdata.Kind) bool {
	for _, reason := range missing {
		kind, ok := reason.Kind()
		if !ok {
			continue
		}
		for _, k := range kinds {
			if k == kind {
				return true
			}
		}
	}
	return false
}

func allKindsProcessed(missing []Reason, processed map[refdata.Kind]struct{}) bool {
	for _, reason := range missing {
		kind, ok := reason.Kind()
		if !ok {
			continue
		}
		if _, done := processed[kind]; !done {
			return false
		}
	}
	return true
}

func rowSample(row Row) string {
	if row.ExternalID != "" {
		return row.ExternalID
	}
	return fmt.Sprintf("row %d", row.Index)
}
