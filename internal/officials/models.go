package officials

// OfficialContact is the single normalized shape for an elected official,
// regardless of which upstream representative API produced it.
type OfficialContact struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Level string `json:"level"`

	// Party is nil when the source omits it. It never serializes as an
	// empty string.
	Party *string `json:"party,omitempty"`

	// Phones is ordered and never contains duplicate values.
	Phones []string `json:"phones"`
	Emails []string `json:"emails"`
	URLs   []string `json:"urls"`

	PhotoURL   *string `json:"photo_url,omitempty"`
	PrimaryURL *string `json:"primary_url,omitempty"`
}

// LookupResult is what Service.Lookup returns to handlers.
type LookupResult struct {
	Location  string            `json:"location"`
	Officials []OfficialContact `json:"officials"`
}

// civicResponse is the office/official indexed upstream variant. Offices
// reference officials by position in the officials array.
type civicResponse struct {
	NormalizedInput civicAddress    `json:"normalizedInput"`
	Offices         []civicOffice   `json:"offices"`
	Officials       []civicOfficial `json:"officials"`
}

type civicAddress struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

type civicOffice struct {
	Name            string   `json:"name"`
	Levels          []string `json:"levels"`
	OfficialIndices []int    `json:"officialIndices"`
}

type civicOfficial struct {
	Name     string   `json:"name"`
	Party    string   `json:"party"`
	Phones   []string `json:"phones"`
	Emails   []string `json:"emails"`
	URLs     []string `json:"urls"`
	PhotoURL string   `json:"photoUrl"`
}

// callsResponse is the flat-list upstream variant. Each representative
// carries a primary phone plus field offices; the source never provides
// email addresses.
type callsResponse struct {
	Location        string                `json:"location"`
	Representatives []callsRepresentative `json:"representatives"`
}

type callsRepresentative struct {
	Name         string             `json:"name"`
	Phone        string             `json:"phone"`
	Party        string             `json:"party"`
	Reason       string             `json:"reason"`
	Area         string             `json:"area"`
	URL          string             `json:"url"`
	PhotoURL     string             `json:"photoURL"`
	FieldOffices []callsFieldOffice `json:"field_offices"`
}

type callsFieldOffice struct {
	Phone string `json:"phone"`
	City  string `json:"city"`
}
