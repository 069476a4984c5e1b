package officials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCivicFlattensOffices(t *testing.T) {
	resp := &civicResponse{
		Offices: []civicOffice{
			{Name: "United States Senate", Levels: []string{"country"}, OfficialIndices: []int{0, 1}},
		},
		Officials: []civicOfficial{
			{
				Name:   "Charles E. Schumer",
				Party:  "Democratic Party",
				Phones: []string{"(202) 224-6542"},
				URLs:   []string{"https://www.schumer.senate.gov", "https://twitter.com/senschumer"},
			},
			{
				Name:   "Kirsten E. Gillibrand",
				Party:  "Democratic Party",
				Phones: []string{"(202) 224-4451", "(202) 224-4451"},
			},
		},
	}

	contacts := normalizeCivic(resp)
	require.Len(t, contacts, 2)

	first := contacts[0]
	assert.Equal(t, "Charles E. Schumer", first.Name)
	assert.Equal(t, "United States Senate", first.Role)
	assert.Equal(t, "country", first.Level)
	require.NotNil(t, first.PrimaryURL)
	assert.Equal(t, "https://www.schumer.senate.gov", *first.PrimaryURL)

	second := contacts[1]
	assert.Equal(t, []string{"(202) 224-4451"}, second.Phones, "duplicate phones collapse to one")
	assert.Nil(t, second.PrimaryURL)
	assert.Equal(t, []string{}, second.Emails)
}

func TestNormalizeCivicLevelFallsBackToOfficeName(t *testing.T) {
	resp := &civicResponse{
		Offices:   []civicOffice{{Name: "Mayor of Albany", OfficialIndices: []int{0}}},
		Officials: []civicOfficial{{Name: "Kathy Sheehan"}},
	}

	contacts := normalizeCivic(resp)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Mayor of Albany", contacts[0].Level)
	assert.NotEmpty(t, contacts[0].Role)
}

func TestNormalizeCivicSkipsBadIndices(t *testing.T) {
	resp := &civicResponse{
		Offices: []civicOffice{
			{Name: "Governor", OfficialIndices: []int{5, -1, 0}},
		},
		Officials: []civicOfficial{{Name: "Kathy Hochul", Party: ""}},
	}

	contacts := normalizeCivic(resp)
	require.Len(t, contacts, 1, "out-of-range references are skipped, not fatal")
	assert.Equal(t, "Kathy Hochul", contacts[0].Name)
	assert.Nil(t, contacts[0].Party, "absent party must be nil, never empty string")
}

func TestNormalizeCallsPhoneOrdering(t *testing.T) {
	resp := &callsResponse{
		Representatives: []callsRepresentative{
			{
				Name:   "Jerrold Nadler",
				Phone:  "202-225-5635",
				Party:  "Democrat",
				Reason: "This is your representative in the House",
				Area:   "US House",
				FieldOffices: []callsFieldOffice{
					{Phone: "212-367-7350", City: "New York"},
					{Phone: "202-225-5635", City: "Washington"},
					{Phone: "718-373-3198", City: "Brooklyn"},
				},
			},
		},
	}

	contacts := normalizeCalls(resp)
	require.Len(t, contacts, 1)

	c := contacts[0]
	assert.Equal(t, []string{"202-225-5635", "212-367-7350", "718-373-3198"}, c.Phones,
		"primary first, field offices in source order, exact duplicates dropped")
	assert.Equal(t, "This is your representative in the House", c.Role)
	assert.Equal(t, "US House", c.Level)
	assert.Equal(t, []string{}, c.Emails, "calls-style sources never provide emails")
}

func TestNormalizeCallsEmptyParty(t *testing.T) {
	resp := &callsResponse{
		Representatives: []callsRepresentative{{Name: "Someone", Phone: "555-0100", Reason: "rep", Area: "US Senate"}},
	}

	contacts := normalizeCalls(resp)
	require.Len(t, contacts, 1)
	assert.Nil(t, contacts[0].Party)
}

func TestNormalizeCallsFallbacksKeepRoleAndLevelNonEmpty(t *testing.T) {
	resp := &callsResponse{
		Representatives: []callsRepresentative{{Name: "Someone", Phone: "555-0100"}},
	}

	contacts := normalizeCalls(resp)
	require.Len(t, contacts, 1)
	assert.NotEmpty(t, contacts[0].Role)
	assert.NotEmpty(t, contacts[0].Level)
}
