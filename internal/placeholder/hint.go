package placeholder

import "strings"

// Hint returns a short natural-language description of what a key expects.
// It is handed to the suggestion collaborator as semantic grounding for each
// pending key and never drives control flow. Identical keys always produce
// identical hints.
func Hint(key string) string {
	k := strings.ToLower(Normalize(key))

	if containsAny(k, "purchase amount", "purchase price", "price", "amount", "consideration", "principal", "valuation cap", "cap") {
		switch {
		case hasToken(k, "valuation"), hasToken(k, "cap"):
			return "Maximum valuation used to compute conversion; a dollar amount"
		case hasToken(k, "principal"):
			return "Principal money amount agreed in the instrument"
		case containsAny(k, "purchase price", "purchase amount", "price"):
			return "Amount of money to be paid by the buyer or investor"
		}
		return "Dollar amount relevant to the agreement"
	}

	if containsAny(k, "company", "corporation", "issuer", "startup", "entity name") {
		return "Legal name of the issuing company"
	}
	if containsAny(k, "investor", "purchaser", "buyer", "lender", "holder") {
		return "Legal name of the investor or purchaser"
	}
	if hasToken(k, "name") {
		return "Personal full name"
	}
	if hasToken(k, "title") {
		return "Person's title or role (e.g., CEO, CFO)"
	}
	if containsAny(k, "state", "jurisdiction", "governing law", "governing", "country") {
		return "Governing law or state/country of incorporation"
	}
	if hasToken(k, "date") {
		return "Calendar date of the event in Month D, YYYY format"
	}
	return "Relevant value for this placeholder as it appears in the document"
}

func containsAny(s string, tokens ...string) bool {
	for _, t := range tokens {
		if hasToken(s, t) {
			return true
		}
	}
	return false
}
