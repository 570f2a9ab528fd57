package importer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row is one raw input record exactly as it came from the upload. Index is the
// position in the submitted batch and stays stable through every pass so
// operator-facing reports line up with the source file.
type Row struct {
	Index       int    `json:"index"`
	ExternalID  string `json:"external_id"`
	Date        string `json:"date"`
	Site        string `json:"site"`
	Personnel   string `json:"personnel"`
	Vehicle     string `json:"vehicle"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	RateType    string `json:"rate_type"`
	Quantity    string `json:"quantity"`
	Distance    string `json:"distance"`
}

// NormalizedRow is an accepted row with every reference resolved and every
// scalar parsed.
type NormalizedRow struct {
	Index       int
	ExternalID  string
	SiteID      uuid.UUID
	PersonnelID uuid.UUID
	VehicleID   uuid.UUID
	RouteID     uuid.UUID
	Date        time.Time
	Quantity    decimal.Decimal
	Distance    decimal.Decimal
}
