package mappers

import (
	"time"

	"github.com/tramova/tramova/modules/trips/domain/importer"
	"github.com/tramova/tramova/modules/trips/domain/trip"
	"github.com/tramova/tramova/modules/trips/presentation/viewmodels"
)

func SessionToViewModel(s *importer.Session) viewmodels.ImportSession {
	breakdown := make(map[string]viewmodels.ReasonTally, len(s.FailureBreakdown))
	for reason, tally := range s.FailureBreakdown {
		breakdown[string(reason)] = viewmodels.ReasonTally{
			Count:   tally.Count,
			Samples: append([]string{}, tally.Samples...),
		}
	}

	failed := make([]viewmodels.FailedRow, 0, len(s.FailedRows))
	for _, row := range s.FailedRows {
		failed = append(failed, viewmodels.FailedRow{
			OriginalIndex: row.OriginalIndex,
			ExternalID:    row.ExternalID,
			Reason:        string(row.Reason),
			Message:       row.Message,
		})
	}

	pending := make([]viewmodels.PendingRow, 0, len(s.PendingRows))
	for _, row := range s.PendingRows {
		missing := make([]string, 0, len(row.Missing))
		for _, reason := range row.Missing {
			missing = append(missing, string(reason))
		}
		pending = append(pending, viewmodels.PendingRow{
			OriginalIndex: row.OriginalIndex,
			ExternalID:    row.ExternalID,
			Missing:       missing,
		})
	}

	kinds := make([]string, 0, len(s.ProcessedKinds))
	for _, kind := range s.ProcessedKinds {
		kinds = append(kinds, string(kind))
	}

	return viewmodels.ImportSession{
		ID:                  s.ID.String(),
		Status:              string(s.Status),
		TotalRows:           s.TotalRows,
		InitialSuccessCount: s.InitialSuccessCount,
		InitialFailureCount: s.InitialFailureCount,
		RetrySuccessCount:   s.RetrySuccessCount,
		RetryFailureCount:   s.RetryFailureCount,
		FailureBreakdown:    breakdown,
		FailedRows:          failed,
		PendingRows:         pending,
		ProcessedKinds:      kinds,
		CreatedAt:           s.CreatedAt.Format(time.RFC3339),
		ExpiresAt:           s.ExpiresAt.Format(time.RFC3339),
	}
}

func TripToViewModel(t trip.Trip) viewmodels.Trip {
	return viewmodels.Trip{
		ID:          t.ID().String(),
		ExternalID:  t.ExternalID(),
		SiteID:      t.SiteID().String(),
		PersonnelID: t.PersonnelID().String(),
		VehicleID:   t.VehicleID().String(),
		RouteID:     t.RouteID().String(),
		Date:        t.Date().Format("2006-01-02"),
		Quantity:    t.Quantity().String(),
		Distance:    t.Distance().String(),
		CreatedAt:   t.CreatedAt().Format(time.RFC3339),
	}
}

func TripsToViewModels(items []trip.Trip) []viewmodels.Trip {
	out := make([]viewmodels.Trip, 0, len(items))
	for _, item := range items {
		out = append(out, TripToViewModel(item))
	}
	return out
}
