package viewmodels

type ReasonTally struct {
	Count   int      `json:"count"`
	Samples []string `json:"samples"`
}

type FailedRow struct {
	OriginalIndex int    `json:"original_index"`
	ExternalID    string `json:"external_id"`
	Reason        string `json:"reason"`
	Message       string `json:"message"`
}

type PendingRow struct {
	OriginalIndex int      `json:"original_index"`
	ExternalID    string   `json:"external_id"`
	Missing       []string `json:"missing"`
}

type ImportSession struct {
	ID                  string                 `json:"id"`
	Status              string                 `json:"status"`
	TotalRows           int                    `json:"total_rows"`
	InitialSuccessCount int                    `json:"initial_success_count"`
	InitialFailureCount int                    `json:"initial_failure_count"`
	RetrySuccessCount   int                    `json:"retry_success_count"`
	RetryFailureCount   int                    `json:"retry_failure_count"`
	FailureBreakdown    map[string]ReasonTally `json:"failure_breakdown"`
	FailedRows          []FailedRow            `json:"failed_rows"`
	PendingRows         []PendingRow           `json:"pending_rows"`
	ProcessedKinds      []string               `json:"processed_kinds"`
	CreatedAt           string                 `json:"created_at"`
	ExpiresAt           string                 `json:"expires_at"`
}

type Trip struct {
	ID          string `json:"id"`
	ExternalID  string `json:"external_id"`
	SiteID      string `json:"site_id"`
	PersonnelID string `json:"personnel_id"`
	VehicleID   string `json:"vehicle_id"`
	RouteID     string `json:"route_id"`
	Date        string `json:"date"`
	Quantity    string `json:"quantity"`
	Distance    string `json:"distance"`
	CreatedAt   string `json:"created_at"`
}
