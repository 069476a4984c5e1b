package drafts

import (
	"strings"
)

// billNumberPlaceholder is a literal token the model is told to emit
// wherever the bill number belongs; post-processing substitutes the real
// number. Keeping the number out of the prompt stops the model from
// reformatting it.
const billNumberPlaceholder = "[BILL_NUMBER]"

// namePlaceholder is left in phone scripts for the caller to fill in.
const namePlaceholder = "[YOUR_NAME]"

const letterSystemPrompt = "You are an assistant that writes respectful, persuasive " +
	"constituent letters to elected officials. Write in the first person as the " +
	"constituent. Be specific and courteous, avoid inflammatory language, and do " +
	"not fabricate facts, statistics, or personal details that were not provided. " +
	"Target 150 to 250 words. Wherever the letter mentions the bill by number, " +
	"write the exact token " + billNumberPlaceholder + " instead of a number."

const phoneSystemPrompt = "You are an assistant that writes short phone scripts " +
	"constituents read aloud when calling an elected official's office. Write in " +
	"the first person, keep sentences short enough to say in one breath, and do " +
	"not fabricate facts or personal details that were not provided. Target 80 to " +
	"150 words. Start with a greeting that introduces the caller as " +
	namePlaceholder + ". Wherever the script mentions the bill by number, write " +
	"the exact token " + billNumberPlaceholder + " instead of a number."

// LetterSystemPrompt returns the fixed system message for letters.
func LetterSystemPrompt() string { return letterSystemPrompt }

// PhoneScriptSystemPrompt returns the fixed system message for scripts.
func PhoneScriptSystemPrompt() string { return phoneSystemPrompt }

// UserPrompt assembles the per-request message from ordered blocks:
// recipient, bill, personal impact, desired action, location, tone. Blocks
// with nothing to say are omitted entirely rather than left as empty
// headings.
func UserPrompt(input DraftInput, recipient *Recipient) string {
	var blocks []string

	blocks = append(blocks, recipientBlock(recipient))
	blocks = append(blocks, stanceBlock(input))
	if bill := billBlock(input); bill != "" {
		blocks = append(blocks, bill)
	}
	if input.PersonalImpact != "" {
		blocks = append(blocks, "Personal impact to mention: "+input.PersonalImpact)
	}
	if input.DesiredAction != "" {
		blocks = append(blocks, "The specific ask: "+input.DesiredAction)
	}
	if location := locationBlock(input); location != "" {
		blocks = append(blocks, location)
	}
	blocks = append(blocks, "Tone: "+input.Tone)

	return strings.Join(blocks, "\n\n")
}

func recipientBlock(recipient *Recipient) string {
	if recipient == nil || strings.TrimSpace(recipient.Name) == "" {
		return "Addressee: the constituent's elected representative."
	}
	if strings.TrimSpace(recipient.Role) == "" {
		return "Addressee: " + recipient.Name + "."
	}
	return "Addressee: " + recipient.Name + ", " + recipient.Role + "."
}

func stanceBlock(input DraftInput) string {
	return "The constituent wants to " + strings.ToUpper(input.Stance) +
		" action on: " + input.Topic + "."
}

// billBlock renders only when there is real bill context. A summary is
// the richest signal and wins over a number-only fallback.
func billBlock(input DraftInput) string {
	switch {
	case input.BillSummary != "":
		block := "The position concerns bill " + billNumberPlaceholder
		if input.BillTitle != "" {
			block += " (" + input.BillTitle + ")"
		}
		return block + ". Bill summary: " + input.BillSummary
	case input.BillNumber != "":
		block := "The position concerns bill " + billNumberPlaceholder
		if input.BillTitle != "" {
			block += " (" + input.BillTitle + ")"
		}
		return block + "."
	default:
		return ""
	}
}

func locationBlock(input DraftInput) string {
	city := strings.TrimSpace(input.City)
	state := strings.TrimSpace(input.State)
	switch {
	case city != "" && state != "":
		return "The constituent lives in " + city + ", " + state + "."
	case city != "":
		return "The constituent lives in " + city + "."
	case state != "":
		return "The constituent lives in " + state + "."
	default:
		return ""
	}
}
