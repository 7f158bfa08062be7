package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"[Company Name]":    "Company Name",
		"  [Date of Safe] ": "Date of Safe",
		"Purchase Amount":   "Purchase Amount",
		"[ $____ ]":         "$____",
		"[Blank]":           "Blank",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	keys := []string{"[Company Name]", "[[Nested]]", "[Purchase Amount]#2", "plain", "[$4,000]"}
	for _, k := range keys {
		once := Normalize(k)
		assert.Equal(t, once, Normalize(once), "normalize not idempotent for %q", k)
	}
}

func TestNormalizeKeepsInternalSymbols(t *testing.T) {
	assert.Equal(t, "Price in $ USD", Normalize("[Price in $ USD]"))
	assert.Equal(t, "snake_case_label", Normalize("[snake_case_label]"))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		key  string
		want Type
	}{
		{"[Date of Safe]", TypeDate},
		{"[Closing Date]", TypeDate},
		{"[Purchase Amount]", TypeMoney},
		{"[Valuation Cap]", TypeMoney},
		{"[Principal]", TypeMoney},
		{"[Company Name]", TypeCompany},
		{"[Acme, LLC]", TypeCompany},
		{"[Investor Name]", TypePerson},
		{"[Title]", TypePerson},
		{"[State of Incorporation]", TypeText},
		{"[Jurisdiction]", TypeText},
		{"[Blank]", TypeText},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.key), "key %q", c.key)
	}
}

// Date-bearing keys win over money tokens, and company beats the person
// bucket even when both token sets appear.
func TestClassifyPrecedence(t *testing.T) {
	assert.Equal(t, TypeDate, Classify("[Purchase Date]"))
	assert.Equal(t, TypeDate, Classify("[Date of Payment Amount]"))
	assert.Equal(t, TypeCompany, Classify("[Company Investor]"))
	assert.Equal(t, TypeMoney, Classify("[Price per State]"))
}

func TestHintDeterministic(t *testing.T) {
	for _, k := range []string{"[Valuation Cap]", "[Purchase Price]", "[Company Name]", "[Investor]", "[Blank]"} {
		assert.Equal(t, Hint(k), Hint(k))
	}
}

func TestHintBuckets(t *testing.T) {
	assert.Equal(t, "Maximum valuation used to compute conversion; a dollar amount", Hint("[Valuation Cap]"))
	assert.Equal(t, "Amount of money to be paid by the buyer or investor", Hint("[Purchase Price]"))
	assert.Equal(t, "Principal money amount agreed in the instrument", Hint("[Principal]"))
	assert.Equal(t, "Legal name of the issuing company", Hint("[Company Name]"))
	assert.Equal(t, "Legal name of the investor or purchaser", Hint("[Investor]"))
	assert.Equal(t, "Calendar date of the event in Month D, YYYY format", Hint("[Date of Safe]"))
	assert.Equal(t, "Governing law or state/country of incorporation", Hint("[Governing Law]"))
	assert.Equal(t, "Governing law or state/country of incorporation", Hint("[State of Incorporation]"))
	assert.Equal(t, "Relevant value for this placeholder as it appears in the document", Hint("[Blank]"))
}
