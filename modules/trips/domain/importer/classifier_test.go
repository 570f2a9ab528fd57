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

var (
	testNow    = time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	siteID     = uuid.New()
	personID   = uuid.New()
	vehicleID  = uuid.New()
	routeID    = uuid.New()
	testOwner  = uuid.New()
	testEpochA = time.Time{}
)

func testSnapshot() refdata.Snapshot {
	return refdata.BuildSnapshot(
		[]refdata.Site{refdata.HydrateSite(siteID, testOwner, "Almacén Norte", testEpochA)},
		[]refdata.Personnel{refdata.HydratePersonnel(personID, testOwner, "D-1042", "José María", testEpochA)},
		[]refdata.Vehicle{refdata.HydrateVehicle(vehicleID, testOwner, "AB 123 CD", testEpochA)},
		[]refdata.Route{refdata.HydrateRoute(routeID, testOwner, "Madrid", "Valencia", "contracted", testEpochA)},
	)
}

func validRow(index int, externalID string) importer.Row {
	return importer.Row{
		Index:       index,
		ExternalID:  externalID,
		Date:        "15/3/2024",
		Site:        "almacen norte",
		Personnel:   "d-1042",
		Vehicle:     "ab 123 cd",
		Origin:      "MADRID",
		Destination: "valencia",
		RateType:    "Contracted",
		Quantity:    "12.5",
		Distance:    "350",
	}
}

func TestClassifyAccepted(t *testing.T) {
	c := importer.NewClassifier(testSnapshot(), testNow)

	out := c.Classify(validRow(0, "EXT-1"))
	require.Equal(t, importer.ResultAccepted, out.Result)
	assert.Equal(t, "EXT-1", out.Normalized.ExternalID)
	assert.Equal(t, siteID, out.Normalized.SiteID)
	assert.Equal(t, personID, out.Normalized.PersonnelID)
	assert.Equal(t, vehicleID, out.Normalized.VehicleID)
	assert.Equal(t, routeID, out.Normalized.RouteID)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), out.Normalized.Date)
	assert.Equal(t, "12.5", out.Normalized.Quantity.String())
}

func TestClassifyScalarRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*importer.Row)
		reason importer.Reason
	}{
		{"empty external id", func(r *importer.Row) { r.ExternalID = "  " }, importer.ReasonMalformedData},
		{"unparseable date", func(r *importer.Row) { r.Date = "2024-03-15" }, importer.ReasonMalformedData},
		{"month/day order", func(r *importer.Row) { r.Date = "3/25/2024" }, importer.ReasonMalformedData},
		{"date before 2000", func(r *importer.Row) { r.Date = "31/12/1999" }, importer.ReasonMalformedData},
		{"date too far ahead", func(r *importer.Row) { r.Date = "2/7/2025" }, importer.ReasonMalformedData},
		{"missing quantity", func(r *importer.Row) { r.Quantity = "" }, importer.ReasonMalformedData},
		{"negative quantity", func(r *importer.Row) { r.Quantity = "-3" }, importer.ReasonMalformedData},
		{"garbage distance", func(r *importer.Row) { r.Distance = "far" }, importer.ReasonMalformedData},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := importer.NewClassifier(testSnapshot(), testNow)
			row := validRow(0, "EXT-1")
			tc.mutate(&row)

			out := c.Classify(row)
			require.Equal(t, importer.ResultRejected, out.Result)
			assert.Equal(t, tc.reason, out.Reason)
			assert.NotEmpty(t, out.Message)
		})
	}
}

func TestClassifyDateBoundaries(t *testing.T) {
	c := importer.NewClassifier(testSnapshot(), testNow)

	row := validRow(0, "EXT-1")
	row.Date = "1/1/2000"
	assert.Equal(t, importer.ResultAccepted, c.Classify(row).Result)

	row = validRow(1, "EXT-2")
	row.Date = "1/7/2025"
	assert.Equal(t, importer.ResultAccepted, c.Classify(row).Result, "exactly one year ahead is allowed")
}

func TestClassifyDuplicateWithinBatch(t *testing.T) {
	c := importer.NewClassifier(testSnapshot(), testNow)

	first := c.Classify(validRow(0, "EXT-1"))
	require.Equal(t, importer.ResultAccepted, first.Result)

	second := c.Classify(validRow(1, "ext-1"))
	require.Equal(t, importer.ResultRejected, second.Result)
	assert.Equal(t, importer.ReasonDuplicateExternalID, second.Reason)
}

func TestClassifyPendingAccumulatesReasons(t *testing.T) {
	c := importer.NewClassifier(testSnapshot(), testNow)

	row := validRow(0, "EXT-1")
	row.Site = "Almacén Sur"
	row.Vehicle = "ZZ 999 ZZ"

	out := c.Classify(row)
	require.Equal(t, importer.ResultPending, out.Result)
	assert.ElementsMatch(t,
		[]importer.Reason{importer.ReasonMissingSite, importer.ReasonMissingVehicle},
		out.Missing,
	)
}

func TestClassifyRouteNeedsExactKey(t *testing.T) {
	c := importer.NewClassifier(testSnapshot(), testNow)

	row := validRow(0, "EXT-1")
	row.RateType = "incidental"

	out := c.Classify(row)
	require.Equal(t, importer.ResultPending, out.Result)
	assert.Equal(t, []importer.Reason{importer.ReasonMissingRoute}, out.Missing)
}

func TestClassifyOptionalDistance(t *testing.T) {
	c := importer.NewClassifier(testSnapshot(), testNow)

	row := validRow(0, "EXT-1")
	row.Distance = ""

	out := c.Classify(row)
	require.Equal(t, importer.ResultAccepted, out.Result)
	assert.True(t, out.Normalized.Distance.IsZero())
}

func TestClassifyIsPureAcrossSnapshots(t *testing.T) {
	row := validRow(0, "EXT-1")
	row.Site = "Almacén Sur"

	stale := importer.NewClassifier(testSnapshot(), testNow)
	out := stale.Classify(row)
	require.Equal(t, importer.ResultPending, out.Result)

	// Same row against a refreshed snapshot containing the site resolves.
	refreshed := refdata.BuildSnapshot(
		[]refdata.Site{
			refdata.HydrateSite(siteID, testOwner, "Almacén Norte", testEpochA),
			refdata.HydrateSite(uuid.New(), testOwner, "Almacén Sur", testEpochA),
		},
		[]refdata.Personnel{refdata.HydratePersonnel(personID, testOwner, "D-1042", "José María", testEpochA)},
		[]refdata.Vehicle{refdata.HydrateVehicle(vehicleID, testOwner, "AB 123 CD", testEpochA)},
		[]refdata.Route{refdata.HydrateRoute(routeID, testOwner, "Madrid", "Valencia", "contracted", testEpochA)},
	)
	out = importer.NewClassifier(refreshed, testNow).Classify(row)
	assert.Equal(t, importer.ResultAccepted, out.Result)
}
