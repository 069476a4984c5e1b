package officials

import (
	"strings"

	pstrings "civiclink/pkg/platform/strings"
)

// normalizeCivic flattens the office/official indexed variant into one
// contact per (office, referenced official) pair. Malformed or out-of-range
// index references are skipped silently; a bad office must not sink the
// whole lookup.
func normalizeCivic(resp *civicResponse) []OfficialContact {
	contacts := make([]OfficialContact, 0, len(resp.Officials))

	for _, office := range resp.Offices {
		for _, idx := range office.OfficialIndices {
			if idx < 0 || idx >= len(resp.Officials) {
				continue
			}
			src := resp.Officials[idx]

			urls := pstrings.DedupeAndTrim(src.URLs)
			contact := OfficialContact{
				Name:     src.Name,
				Role:     office.Name,
				Level:    pstrings.FirstOr(office.Levels, office.Name),
				Party:    pstrings.PtrOrNil(src.Party),
				Phones:   emptyIfNil(pstrings.DedupeAndTrim(src.Phones)),
				Emails:   emptyIfNil(pstrings.DedupeAndTrim(src.Emails)),
				URLs:     emptyIfNil(urls),
				PhotoURL: pstrings.PtrOrNil(src.PhotoURL),
			}
			if len(urls) > 0 {
				contact.PrimaryURL = &urls[0]
			}
			contacts = append(contacts, contact)
		}
	}

	return contacts
}

// normalizeCalls maps the flat representative list. Phones are ordered
// primary-first, then field offices in source order, with exact duplicates
// dropped. The source provides no email addresses.
func normalizeCalls(resp *callsResponse) []OfficialContact {
	contacts := make([]OfficialContact, 0, len(resp.Representatives))

	for _, rep := range resp.Representatives {
		phones := make([]string, 0, 1+len(rep.FieldOffices))
		if strings.TrimSpace(rep.Phone) != "" {
			phones = append(phones, rep.Phone)
		}
		for _, office := range rep.FieldOffices {
			phones = append(phones, office.Phone)
		}

		urls := []string{}
		if strings.TrimSpace(rep.URL) != "" {
			urls = append(urls, strings.TrimSpace(rep.URL))
		}

		contact := OfficialContact{
			Name:     rep.Name,
			Role:     pstrings.FirstOr([]string{rep.Reason}, "Elected Official"),
			Level:    pstrings.FirstOr([]string{rep.Area}, "district"),
			Party:    pstrings.PtrOrNil(rep.Party),
			Phones:   emptyIfNil(pstrings.DedupeAndTrim(phones)),
			Emails:   []string{},
			URLs:     urls,
			PhotoURL: pstrings.PtrOrNil(rep.PhotoURL),
		}
		if len(urls) > 0 {
			contact.PrimaryURL = &urls[0]
		}
		contacts = append(contacts, contact)
	}

	return contacts
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
