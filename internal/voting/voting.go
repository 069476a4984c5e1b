// Package voting resolves whether an elected official can vote on a
// given bill, based on the official's role and the bill's chamber.
package voting

import (
	"strings"

	"civiclink/internal/bills"
)

// Eligibility is the outcome of a resolution.
type Eligibility struct {
	Eligible bool          `json:"eligible"`
	Chamber  bills.Chamber `json:"chamber,omitempty"`
	Banner   string        `json:"banner"`
}

var (
	houseMemberMarkers = []string{"representative", "rep."}
	senateRoleMarkers  = []string{"senator", "sen."}
)

// BillChamber infers the chamber a bill belongs to from its bill number.
// The empty chamber means the number gave no signal.
func BillChamber(billNumber string) bills.Chamber {
	return bills.InferChamber(billNumber)
}

// CanVote reports whether an official with the given role sits in the
// chamber that votes on the bill. Matching is case-insensitive substring
// containment on the free-text role: a house vote requires a member
// marker ("representative" or "rep.") together with "house", a senate
// vote requires "senator" or "sen.". The bare chamber word alone never
// qualifies, so staff roles like "House Clerk" stay ineligible. The
// official's state does not narrow the result; eligibility is
// chamber-wide. An unknown chamber is never eligible.
func CanVote(role string, chamber bills.Chamber, state string) bool {
	lowered := strings.ToLower(role)
	switch chamber {
	case bills.ChamberHouse:
		return containsAny(lowered, houseMemberMarkers) && strings.Contains(lowered, "house")
	case bills.ChamberSenate:
		return containsAny(lowered, senateRoleMarkers)
	default:
		return false
	}
}

// Resolve combines chamber inference, eligibility, and the banner into
// one answer for the HTTP surface.
func Resolve(role, billNumber, state string) Eligibility {
	chamber := BillChamber(billNumber)
	return Eligibility{
		Eligible: CanVote(role, chamber, state),
		Chamber:  chamber,
		Banner:   EligibilityBanner(chamber),
	}
}

// EligibilityBanner describes who gets to vote on a bill in the given
// chamber, for display next to an official's contact card.
func EligibilityBanner(chamber bills.Chamber) string {
	switch chamber {
	case bills.ChamberHouse:
		return "This bill is before the House; representatives vote on it."
	case bills.ChamberSenate:
		return "This bill is before the Senate; senators vote on it."
	default:
		return "The voting chamber for this bill could not be determined."
	}
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
