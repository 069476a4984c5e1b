package bills

// Level distinguishes federal from state bills.
type Level string

const (
	LevelFederal Level = "federal"
	LevelState   Level = "state"
)

// Chamber is the originating chamber of a bill. The empty value means the
// chamber could not be determined.
type Chamber string

const (
	ChamberHouse  Chamber = "house"
	ChamberSenate Chamber = "senate"
)

// NormalizedBill is the one shape every provider's bill data collapses
// into. ID is always "{JURISDICTION_ABBR} {TYPE} {NUMBER}" with leading
// zeros stripped and exactly one space between prefix and number.
type NormalizedBill struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Summary          string   `json:"summary,omitempty"`
	Level            Level    `json:"level"`
	Jurisdiction     string   `json:"jurisdiction"`
	Session          string   `json:"session,omitempty"`
	Chamber          Chamber  `json:"chamber,omitempty"`
	Introduced       string   `json:"introduced,omitempty"`
	LatestAction     string   `json:"latest_action,omitempty"`
	LatestActionDate string   `json:"latest_action_date,omitempty"`
	Sponsors         []string `json:"sponsors,omitempty"`
	SourceURL        string   `json:"source_url,omitempty"`

	// DetailID is the provider-scoped identifier accepted by GetDetail.
	DetailID string `json:"detail_id,omitempty"`
}

// SearchFilters narrows a bill search.
type SearchFilters struct {
	// State is a postal abbreviation. Empty means federal search.
	State    string
	Page     int
	PageSize int
}

// SearchResult carries bills plus an optional notice explaining a degraded
// (but non-fatal) outcome such as an unconfigured provider.
type SearchResult struct {
	Bills  []NormalizedBill `json:"bills"`
	Notice string           `json:"notice,omitempty"`
}

func (f SearchFilters) page() int {
	if f.Page < 1 {
		return 1
	}
	return f.Page
}

func (f SearchFilters) pageSize() int {
	if f.PageSize < 1 || f.PageSize > 50 {
		return 20
	}
	return f.PageSize
}
