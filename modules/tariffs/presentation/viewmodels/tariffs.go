package viewmodels

type Tariff struct {
	ID             string  `json:"id"`
	RouteID        string  `json:"route_id"`
	RateType       string  `json:"rate_type"`
	Method         string  `json:"method"`
	BaseValue      string  `json:"base_value"`
	SurchargeValue string  `json:"surcharge_value"`
	ValidFrom      string  `json:"valid_from"`
	ValidUntil     *string `json:"valid_until"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type CurrentTariff struct {
	Tariff
	Stale bool `json:"stale"`
}
