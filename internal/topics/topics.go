// Package topics maps free-text bill titles onto a fixed issue taxonomy
// with ordered keyword matching.
package topics

import "strings"

// TopicOther is the fallback when no keyword matches.
const TopicOther = "OTHER"

type entry struct {
	topic    string
	keywords []string
}

// taxonomy is scanned in order and the first keyword hit wins, so earlier
// topics shadow later ones. Criminal justice precedes elections on
// purpose: "reform" outranks "electoral", and a title like "Electoral
// Reform Act" lands on criminal justice. Reorder with care.
var taxonomy = []entry{
	{topic: "Criminal Justice & Policing", keywords: []string{
		"criminal", "police", "policing", "prison", "incarceration",
		"sentencing", "parole", "reform", "bail",
	}},
	{topic: "Voting & Elections", keywords: []string{
		"electoral", "election", "voting", "voter", "ballot",
		"redistricting", "campaign finance",
	}},
	{topic: "Environment & Climate", keywords: []string{
		"climate", "environment", "emission", "pollution", "clean energy",
		"renewable", "wildlife", "conservation",
	}},
	{topic: "Healthcare", keywords: []string{
		"health", "medicaid", "medicare", "hospital", "prescription",
		"insurance coverage", "mental illness",
	}},
	{topic: "Education", keywords: []string{
		"education", "school", "student", "teacher", "curriculum",
		"tuition", "university",
	}},
	{topic: "Housing", keywords: []string{
		"housing", "rent", "tenant", "landlord", "zoning", "homeless",
		"eviction",
	}},
	{topic: "Immigration", keywords: []string{
		"immigration", "immigrant", "visa", "asylum", "border", "refugee",
		"citizenship",
	}},
	{topic: "Economy & Taxes", keywords: []string{
		"tax", "budget", "wage", "employment", "small business",
		"inflation", "tariff",
	}},
	{topic: "Guns & Public Safety", keywords: []string{
		"firearm", "gun", "ammunition", "concealed carry",
		"background check",
	}},
	{topic: "Civil Rights", keywords: []string{
		"civil rights", "discrimination", "disability", "equality",
		"accessibility", "privacy",
	}},
}

// Classify maps a bill title to its issue topic. Matching is
// case-insensitive substring containment; an empty or unmatched title
// returns TopicOther.
func Classify(title string) string {
	lowered := strings.ToLower(title)
	if strings.TrimSpace(lowered) == "" {
		return TopicOther
	}
	for _, e := range taxonomy {
		for _, keyword := range e.keywords {
			if strings.Contains(lowered, keyword) {
				return e.topic
			}
		}
	}
	return TopicOther
}

// All returns the topic labels in matching priority order, with
// TopicOther appended last. Callers use it to render pick lists.
func All() []string {
	labels := make([]string, 0, len(taxonomy)+1)
	for _, e := range taxonomy {
		labels = append(labels, e.topic)
	}
	return append(labels, TopicOther)
}
