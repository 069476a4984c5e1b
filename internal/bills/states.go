package bills

import "strings"

// stateNames maps postal abbreviations to full jurisdiction names for all
// 50 states, DC, and Puerto Rico.
var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
	"DC": "District of Columbia", "PR": "Puerto Rico",
}

// stateAbbrs is the reverse index, keyed by lowercased full name.
var stateAbbrs = func() map[string]string {
	m := make(map[string]string, len(stateNames))
	for abbr, name := range stateNames {
		m[strings.ToLower(name)] = abbr
	}
	return m
}()

// StateName resolves a postal abbreviation to the full jurisdiction name.
// Unknown abbreviations report ok=false; no guessing here. The federal
// client applies jurisdictionAbbr's first-two-letters fallback in the
// opposite direction, and that asymmetry is intentional.
func StateName(abbr string) (string, bool) {
	name, ok := stateNames[strings.ToUpper(strings.TrimSpace(abbr))]
	return name, ok
}

// StateAbbr resolves a full jurisdiction name to its postal abbreviation.
// Unknown names report ok=false.
func StateAbbr(name string) (string, bool) {
	abbr, ok := stateAbbrs[strings.ToLower(strings.TrimSpace(name))]
	return abbr, ok
}
