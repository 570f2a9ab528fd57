package viewmodels

type Site struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type Personnel struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	FullName   string `json:"full_name"`
	CreatedAt  string `json:"created_at"`
}

type Vehicle struct {
	ID        string `json:"id"`
	Plate     string `json:"plate"`
	CreatedAt string `json:"created_at"`
}

type Route struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	RateType    string `json:"rate_type"`
	CreatedAt   string `json:"created_at"`
}
