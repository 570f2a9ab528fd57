package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tramova/tramova/modules/directory/domain/refdata"
)

type Result string

const (
	ResultAccepted Result = "accepted"
	ResultRejected Result = "rejected"
	ResultPending  Result = "pending"
)

// Classification is the outcome for one row. Exactly one of Normalized,
// (Reason, Message) or Missing is meaningful, per Result.
type Classification struct {
	Result     Result
	Normalized NormalizedRow
	Reason     Reason
	Message    string
	Missing    []Reason
}

const dateLayout = "2/1/2006"

var earliestTripDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Classifier runs one classification pass. The snapshot and clock are fixed at
// construction so every row in the pass sees the same world; the seen set
// tracks external ids within the batch for duplicate detection.
type Classifier struct {
	snapshot refdata.Snapshot
	now      time.Time
	seen     map[string]struct{}
}

func NewClassifier(snapshot refdata.Snapshot, now time.Time) *Classifier {
	return &Classifier{
		snapshot: snapshot,
		now:      now,
		seen:     make(map[string]struct{}),
	}
}

// Classify validates scalars first, then resolves references. Scalar faults
// reject the row outright: a date typo is not correctable with new reference
// data. Reference misses accumulate, so a row missing both its site and its
// vehicle reports both and the retry pass knows every kind it waits on.
func (c *Classifier) Classify(row Row) Classification {
	externalID := strings.TrimSpace(row.ExternalID)
	if externalID == "" {
		return rejected(ReasonMalformedData, "external id is required")
	}
	key := strings.ToLower(externalID)
	if _, dup := c.seen[key]; dup {
		return rejected(ReasonDuplicateExternalID, fmt.Sprintf("external id %q appears more than once in this batch", externalID))
	}
	c.seen[key] = struct{}{}

	date, err := time.Parse(dateLayout, strings.TrimSpace(row.Date))
	if err != nil {
		return rejected(ReasonMalformedData, fmt.Sprintf("date %q is not day/month/year", row.Date))
	}
	if date.Before(earliestTripDate) || date.After(c.now.AddDate(1, 0, 0)) {
		return rejected(ReasonMalformedData, fmt.Sprintf("date %q is out of range", row.Date))
	}

	quantity, err := parseAmount(row.Quantity, true)
	if err != nil {
		return rejected(ReasonMalformedData, fmt.Sprintf("quantity %q is not a non-negative number", row.Quantity))
	}
	distance, err := parseAmount(row.Distance, false)
	if err != nil {
		return rejected(ReasonMalformedData, fmt.Sprintf("distance %q is not a non-negative number", row.Distance))
	}

	var missing []Reason
	site, ok := c.snapshot.Site(row.Site)
	if !ok {
		missing = append(missing, ReasonMissingSite)
	}
	personnel, ok := c.snapshot.Personnel(row.Personnel)
	if !ok {
		missing = append(missing, ReasonMissingPersonnel)
	}
	vehicle, ok := c.snapshot.Vehicle(row.Vehicle)
	if !ok {
		missing = append(missing, ReasonMissingVehicle)
	}
	route, ok := c.snapshot.Route(row.Origin, row.Destination, row.RateType)
	if !ok {
		missing = append(missing, ReasonMissingRoute)
	}
	if len(missing) > 0 {
		return Classification{Result: ResultPending, Missing: missing}
	}

	return Classification{
		Result: ResultAccepted,
		Normalized: NormalizedRow{
			Index:       row.Index,
			ExternalID:  externalID,
			SiteID:      site.ID(),
			PersonnelID: personnel.ID(),
			VehicleID:   vehicle.ID(),
			RouteID:     route.ID(),
			Date:        date,
			Quantity:    quantity,
			Distance:    distance,
		},
	}
}

func rejected(reason Reason, message string) Classification {
	return Classification{Result: ResultRejected, Reason: reason, Message: message}
}

func parseAmount(raw string, required bool) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return decimal.Zero, fmt.Errorf("value is required")
		}
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("value is negative")
	}
	return v, nil
}
