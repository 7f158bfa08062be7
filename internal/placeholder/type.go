package placeholder

import (
	"strings"
	"unicode"
)

// Type is the semantic category of a placeholder key.
type Type string

// Stable values (stored in DB and echoed over the API).
const (
	TypeDate    Type = "DATE"
	TypeMoney   Type = "MONEY"
	TypeCompany Type = "COMPANY"
	TypePerson  Type = "PERSON"
	TypeText    Type = "TEXT"
)

// typeRule ties a token set to the Type it implies.
type typeRule struct {
	tokens []string
	result Type
}

// typeRules is evaluated in order, first match wins. DATE sits before MONEY
// because date-like keys often carry numeric-adjacent words, and the specific
// party buckets come before the generic location bucket collapses into TEXT.
var typeRules = []typeRule{
	{[]string{"date"}, TypeDate},
	{[]string{"amount", "price", "cap", "valuation", "purchase", "principal", "dollar"}, TypeMoney},
	{[]string{"company", "corporation", "inc", "llc"}, TypeCompany},
	{[]string{"investor", "name", "title"}, TypePerson},
	{[]string{"state", "jurisdiction", "country", "address", "city"}, TypeText},
}

// Classify maps a placeholder key to its Type by token inspection of the
// normalized key. Deterministic; unmatched keys default to TypeText.
func Classify(key string) Type {
	k := strings.ToLower(Normalize(key))
	for _, r := range typeRules {
		for _, t := range r.tokens {
			if hasToken(k, t) {
				return r.result
			}
		}
	}
	return TypeText
}

// hasToken reports whether tok occurs in k. Single-word tokens must match a
// whole word, so "incorporation" does not trip "corporation" or "inc";
// multi-word tokens fall back to substring search.
func hasToken(k, tok string) bool {
	if strings.ContainsRune(tok, ' ') {
		return strings.Contains(k, tok)
	}
	for _, w := range strings.FieldsFunc(k, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if w == tok {
			return true
		}
	}
	return false
}
