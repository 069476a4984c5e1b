// Package drafts turns structured constituent input into letter and
// phone-script prompts and calls a text-generation backend.
package drafts

import (
	"civiclink/internal/bills"
)

// Stances and tones accepted by DraftInput.
const (
	StanceSupport = "support"
	StanceOppose  = "oppose"

	ToneNeutral  = "neutral"
	ToneUrgent   = "urgent"
	ToneFriendly = "friendly"
)

// DraftInput is everything a constituent tells us about their ask. It is
// validated once per request and never persisted.
type DraftInput struct {
	Stance         string `json:"stance" validate:"required,oneof=support oppose"`
	Topic          string `json:"topic" validate:"required,notblank,min=2,max=80"`
	BillNumber     string `json:"bill_number,omitempty" validate:"omitempty,max=40"`
	BillTitle      string `json:"bill_title,omitempty" validate:"omitempty,max=300"`
	BillSummary    string `json:"bill_summary,omitempty" validate:"omitempty,max=2000"`
	City           string `json:"city,omitempty" validate:"omitempty,max=100"`
	State          string `json:"state,omitempty" validate:"omitempty,max=100"`
	PersonalImpact string `json:"personal_impact,omitempty" validate:"omitempty,max=300"`
	DesiredAction  string `json:"desired_action,omitempty" validate:"omitempty,max=120"`
	Tone           string `json:"tone,omitempty" validate:"omitempty,oneof=neutral urgent friendly"`
}

// normalize fills defaults and canonicalizes the bill number. Called
// after validation so the oneof checks see the raw input.
func (in *DraftInput) normalize() {
	if in.Tone == "" {
		in.Tone = ToneNeutral
	}
	if in.BillNumber != "" {
		in.BillNumber = bills.FormatBillNumber(in.BillNumber)
	}
}

// Recipient identifies the official a draft is addressed to. Nil means
// the draft addresses an unnamed representative.
type Recipient struct {
	Name string `json:"name" validate:"required,notblank,max=200"`
	Role string `json:"role,omitempty" validate:"omitempty,max=200"`
}
