package importer_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
	"github.com/tramova/tramova/modules/trips/domain/importer"
)

const maxSamples = 5

func classifyAll(c *importer.Classifier, rows []importer.Row) []importer.Classification {
	outcomes := make([]importer.Classification, 0, len(rows))
	for _, row := range rows {
		outcomes = append(outcomes, c.Classify(row))
	}
	return outcomes
}

func newSessionForRows(rows []importer.Row) *importer.Session {
	return importer.NewSession(testOwner, len(rows), testNow, 24*time.Hour)
}

// Batch of 5: three valid, one with an unknown site, one with a malformed
// date.
func mixedBatch() []importer.Row {
	rows := []importer.Row{
		validRow(0, "EXT-1"),
		validRow(1, "EXT-2"),
		validRow(2, "EXT-3"),
		validRow(3, "EXT-4"),
		validRow(4, "EXT-5"),
	}
	rows[3].Site = "Almacén Sur"
	rows[4].Date = "not-a-date"
	return rows
}

func TestApplyInitialMixedBatch(t *testing.T) {
	rows := mixedBatch()
	session := newSessionForRows(rows)
	outcomes := classifyAll(importer.NewClassifier(testSnapshot(), testNow), rows)

	importer.ApplyInitial(session, rows, outcomes, maxSamples)

	assert.Equal(t, importer.StatusPendingCorrection, session.Status)
	assert.Equal(t, 3, session.InitialSuccessCount)
	assert.Equal(t, 1, session.InitialFailureCount)

	require.Len(t, session.FailedRows, 1)
	assert.Equal(t, 4, session.FailedRows[0].OriginalIndex)
	assert.Equal(t, importer.ReasonMalformedData, session.FailedRows[0].Reason)

	require.Len(t, session.PendingRows, 1)
	assert.Equal(t, 3, session.PendingRows[0].OriginalIndex)
	assert.Equal(t, []importer.Reason{importer.ReasonMissingSite}, session.PendingRows[0].Missing)

	require.Contains(t, session.FailureBreakdown, importer.ReasonMissingSite)
	assert.Equal(t, 1, session.FailureBreakdown[importer.ReasonMissingSite].Count)
	assert.Equal(t, []string{"EXT-4"}, session.FailureBreakdown[importer.ReasonMissingSite].Samples)
}

func TestApplyInitialTotalsAlwaysAddUp(t *testing.T) {
	cases := []struct {
		name string
		rows []importer.Row
	}{
		{"mixed", mixedBatch()},
		{"empty", nil},
		{"all valid", []importer.Row{validRow(0, "A"), validRow(1, "B")}},
		{"all broken", func() []importer.Row {
			rows := []importer.Row{validRow(0, "A"), validRow(1, "A"), validRow(2, "")}
			return rows
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session := newSessionForRows(tc.rows)
			outcomes := classifyAll(importer.NewClassifier(testSnapshot(), testNow), tc.rows)

			importer.ApplyInitial(session, tc.rows, outcomes, maxSamples)

			total := session.InitialSuccessCount + session.InitialFailureCount + len(session.PendingRows)
			assert.Equal(t, len(tc.rows), total)
			assertPartitionsDisjoint(t, session)
		})
	}
}

func TestApplyInitialAllRowsRejectedIsStillCompleted(t *testing.T) {
	rows := []importer.Row{validRow(0, ""), validRow(1, "")}
	session := newSessionForRows(rows)
	outcomes := classifyAll(importer.NewClassifier(testSnapshot(), testNow), rows)

	importer.ApplyInitial(session, rows, outcomes, maxSamples)

	assert.Equal(t, importer.StatusCompleted, session.Status)
	assert.Equal(t, 2, session.InitialFailureCount)
}

func TestApplyRetryResolvesPendingRow(t *testing.T) {
	rows := mixedBatch()
	session := newSessionForRows(rows)
	importer.ApplyInitial(session, rows, classifyAll(importer.NewClassifier(testSnapshot(), testNow), rows), maxSamples)
	require.Equal(t, importer.StatusPendingCorrection, session.Status)

	// Operator created the missing site; the refreshed snapshot resolves it.
	refreshed := refdata.BuildSnapshot(
		[]refdata.Site{
			refdata.HydrateSite(siteID, testOwner, "Almacén Norte", testEpochA),
			refdata.HydrateSite(uuid.New(), testOwner, "Almacén Sur", testEpochA),
		},
		[]refdata.Personnel{refdata.HydratePersonnel(personID, testOwner, "D-1042", "José María", testEpochA)},
		[]refdata.Vehicle{refdata.HydrateVehicle(vehicleID, testOwner, "AB 123 CD", testEpochA)},
		[]refdata.Route{refdata.HydrateRoute(routeID, testOwner, "Madrid", "Valencia", "contracted", testEpochA)},
	)
	outcomes := reclassifyPending(session, []refdata.Kind{refdata.KindSite}, refreshed)

	err := importer.ApplyRetry(session, []refdata.Kind{refdata.KindSite}, outcomes, maxSamples)
	require.NoError(t, err)

	assert.Equal(t, importer.StatusCompleted, session.Status)
	assert.Equal(t, 1, session.RetrySuccessCount)
	assert.Empty(t, session.PendingRows)
	assert.Equal(t, []refdata.Kind{refdata.KindSite}, session.ProcessedKinds)
}

func TestApplyRetryUnrelatedKindLeavesRowPending(t *testing.T) {
	rows := mixedBatch()
	session := newSessionForRows(rows)
	importer.ApplyInitial(session, rows, classifyAll(importer.NewClassifier(testSnapshot(), testNow), rows), maxSamples)

	// Vehicle corrections cannot help a row that only misses its site, so
	// the row is not reclassified at all.
	outcomes := reclassifyPending(session, []refdata.Kind{refdata.KindVehicle}, testSnapshot())
	require.Empty(t, outcomes)

	err := importer.ApplyRetry(session, []refdata.Kind{refdata.KindVehicle}, outcomes, maxSamples)
	require.NoError(t, err)

	assert.Equal(t, importer.StatusPendingCorrection, session.Status)
	require.Len(t, session.PendingRows, 1)
	assert.Equal(t, 3, session.PendingRows[0].OriginalIndex)
	assert.Equal(t, []importer.Reason{importer.ReasonMissingSite}, session.PendingRows[0].Missing)
	assert.Zero(t, session.RetrySuccessCount)
	assert.Zero(t, session.RetryFailureCount)
}

func TestApplyRetryStillMissingBecomesFailure(t *testing.T) {
	rows := mixedBatch()
	session := newSessionForRows(rows)
	importer.ApplyInitial(session, rows, classifyAll(importer.NewClassifier(testSnapshot(), testNow), rows), maxSamples)

	// Site corrections supplied, but the snapshot still lacks the site: the
	// row had its one chance and is closed out.
	outcomes := reclassifyPending(session, []refdata.Kind{refdata.KindSite}, testSnapshot())
	require.Len(t, outcomes, 1)

	err := importer.ApplyRetry(session, []refdata.Kind{refdata.KindSite}, outcomes, maxSamples)
	require.NoError(t, err)

	assert.Equal(t, importer.StatusCompleted, session.Status)
	assert.Empty(t, session.PendingRows)
	assert.Equal(t, 1, session.RetryFailureCount)
	require.Len(t, session.FailedRows, 2)
	assert.Equal(t, importer.ReasonStillMissing, session.FailedRows[1].Reason)
	assert.Equal(t, 3, session.FailedRows[1].OriginalIndex)
}

func TestApplyRetryKindOnlyOncePerSession(t *testing.T) {
	rows := mixedBatch()
	session := newSessionForRows(rows)
	importer.ApplyInitial(session, rows, classifyAll(importer.NewClassifier(testSnapshot(), testNow), rows), maxSamples)

	err := importer.ApplyRetry(session, []refdata.Kind{refdata.KindVehicle}, nil, maxSamples)
	require.NoError(t, err)
	pendingBefore := len(session.PendingRows)
	failedBefore := len(session.FailedRows)

	err = importer.ApplyRetry(session, []refdata.Kind{refdata.KindVehicle}, nil, maxSamples)
	require.ErrorIs(t, err, importer.ErrKindAlreadyProcessed)
	assert.Len(t, session.PendingRows, pendingBefore, "rejected retry must not move rows")
	assert.Len(t, session.FailedRows, failedBefore)
}

func TestApplyRetryRejectsTerminalSession(t *testing.T) {
	rows := []importer.Row{validRow(0, "EXT-1")}
	session := newSessionForRows(rows)
	importer.ApplyInitial(session, rows, classifyAll(importer.NewClassifier(testSnapshot(), testNow), rows), maxSamples)
	require.Equal(t, importer.StatusCompleted, session.Status)

	err := importer.ApplyRetry(session, []refdata.Kind{refdata.KindSite}, nil, maxSamples)
	assert.ErrorIs(t, err, importer.ErrSessionFinalized)
}

func TestApplyRetryRejectsUnknownKind(t *testing.T) {
	rows := mixedBatch()
	session := newSessionForRows(rows)
	importer.ApplyInitial(session, rows, classifyAll(importer.NewClassifier(testSnapshot(), testNow), rows), maxSamples)

	err := importer.ApplyRetry(session, []refdata.Kind{refdata.Kind("warehouse")}, nil, maxSamples)
	assert.ErrorIs(t, err, importer.ErrInvalidKind)
}

func TestApplyRetryPartitionsStayDisjoint(t *testing.T) {
	rows := mixedBatch()
	extra := validRow(5, "EXT-6")
	extra.Vehicle = "ZZ 999 ZZ"
	rows = append(rows, extra)

	session := newSessionForRows(rows)
	importer.ApplyInitial(session, rows, classifyAll(importer.NewClassifier(testSnapshot(), testNow), rows), maxSamples)
	require.Len(t, session.PendingRows, 2)

	// Retry sites only: the missing-site row fails as still-missing, the
	// missing-vehicle row stays pending.
	outcomes := reclassifyPending(session, []refdata.Kind{refdata.KindSite}, testSnapshot())
	err := importer.ApplyRetry(session, []refdata.Kind{refdata.KindSite}, outcomes, maxSamples)
	require.NoError(t, err)

	assert.Equal(t, importer.StatusPendingCorrection, session.Status)
	require.Len(t, session.PendingRows, 1)
	assert.Equal(t, 5, session.PendingRows[0].OriginalIndex)
	assertPartitionsDisjoint(t, session)
}

// reclassifyPending mirrors what the import service does: re-run exactly the
// pending rows whose missing reasons intersect the supplied kinds.
func reclassifyPending(s *importer.Session, kinds []refdata.Kind, snapshot refdata.Snapshot) map[int]importer.Classification {
	classifier := importer.NewClassifier(snapshot, testNow)
	outcomes := make(map[int]importer.Classification)
	for _, pending := range s.PendingRows {
		if importer.MissingIntersects(pending.Missing, kinds) {
			outcomes[pending.OriginalIndex] = classifier.Classify(pending.Payload)
		}
	}
	return outcomes
}

func assertPartitionsDisjoint(t *testing.T, s *importer.Session) {
	t.Helper()
	failed := make(map[int]struct{}, len(s.FailedRows))
	for _, row := range s.FailedRows {
		failed[row.OriginalIndex] = struct{}{}
	}
	for _, row := range s.PendingRows {
		_, clash := failed[row.OriginalIndex]
		assert.False(t, clash, "index %d present in both partitions", row.OriginalIndex)
	}
}
