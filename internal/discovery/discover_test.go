package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfill/internal/document"
)

func TestRewriteUnitNoDelimiters(t *testing.T) {
	for _, text := range []string{"", "plain text", "only [ opening", "only ] closing"} {
		out, keys := RewriteUnit(text)
		assert.Equal(t, text, out)
		assert.Empty(t, keys)
	}
}

func TestRewriteUnitNamedKeptVerbatim(t *testing.T) {
	text := "This Agreement is made by [Company Name] and [Investor Name]."
	out, keys := RewriteUnit(text)
	assert.Equal(t, text, out)
	assert.Equal(t, []string{"[Company Name]", "[Investor Name]"}, keys)
}

func TestRewriteUnitQuotedPhraseBefore(t *testing.T) {
	out, keys := RewriteUnit(`The investor pays the “Purchase Amount” of [_____].`)
	assert.Equal(t, `The investor pays the “Purchase Amount” of [Purchase Amount].`, out)
	assert.Equal(t, []string{"[Purchase Amount]"}, keys)
}

func TestRewriteUnitStraightQuotes(t *testing.T) {
	out, keys := RewriteUnit(`the "Valuation Cap" equal to [____]`)
	assert.Equal(t, `the "Valuation Cap" equal to [Valuation Cap]`, out)
	assert.Equal(t, []string{"[Valuation Cap]"}, keys)
}

func TestRewriteUnitDuplicateLabelsEnumerated(t *testing.T) {
	out, keys := RewriteUnit(`The “Purchase Amount” is [____] and again [____].`)
	assert.Equal(t, `The “Purchase Amount” is [Purchase Amount] and again [Purchase Amount]#2.`, out)
	assert.Equal(t, []string{"[Purchase Amount]", "[Purchase Amount]#2"}, keys)
}

func TestRewriteUnitTokenClauseBefore(t *testing.T) {
	out, keys := RewriteUnit(`the valuation cap agreed by the parties [____]`)
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "Valuation Cap")
	assert.Contains(t, out, keys[0])
}

func TestRewriteUnitQuotedPhraseAfter(t *testing.T) {
	out, keys := RewriteUnit(`[____] shall mean the “Effective Date”.`)
	assert.Equal(t, `[Effective Date] shall mean the “Effective Date”.`, out)
	assert.Equal(t, []string{"[Effective Date]"}, keys)
}

func TestRewriteUnitCanonicalTokenNearby(t *testing.T) {
	_, keys := RewriteUnit(`payable at closing, purchase price: [____]`)
	assert.Equal(t, []string{"[Purchase Price]"}, keys)
}

func TestRewriteUnitFallbackLabel(t *testing.T) {
	out, keys := RewriteUnit(`Fill in [____] here.`)
	assert.Equal(t, `Fill in [Blank] here.`, out)
	assert.Equal(t, []string{"[Blank]"}, keys)
}

func TestRewriteUnitMixedSpansKeepOrder(t *testing.T) {
	out, keys := RewriteUnit(`[Company Name] owes the “Purchase Amount” of [____].`)
	assert.Equal(t, `[Company Name] owes the “Purchase Amount” of [Purchase Amount].`, out)
	assert.Equal(t, []string{"[Company Name]", "[Purchase Amount]"}, keys)
}

func TestRewriteUnitPreservesSurroundingText(t *testing.T) {
	text := "  leading ws [Company Name] trailing punct!?  "
	out, _ := RewriteUnit(text)
	assert.Equal(t, text, out)
}

func TestRunBodyThenTablesFirstAppearance(t *testing.T) {
	doc := &document.Document{
		Paragraphs: []string{
			`Agreement with [Company Name].`,
			`No blanks in this paragraph.`,
			`The “Purchase Amount” of [____] is due.`,
		},
		Tables: [][][]string{
			{
				{`[Company Name]`, `Signed on [Date of Safe]`},
			},
		},
	}
	keys := Run(doc)
	assert.Equal(t, []string{"[Company Name]", "[Purchase Amount]", "[Date of Safe]"}, keys)
	assert.Equal(t, `The “Purchase Amount” of [Purchase Amount] is due.`, doc.Paragraphs[2])
	assert.Equal(t, `No blanks in this paragraph.`, doc.Paragraphs[1])
}

func TestRunUntouchedDocument(t *testing.T) {
	doc := &document.Document{Paragraphs: []string{"nothing", "to see"}}
	keys := Run(doc)
	assert.Empty(t, keys)
	assert.Equal(t, []string{"nothing", "to see"}, doc.Paragraphs)
}

// Running discovery twice is safe: the renamed spans are named on the second
// pass and stay untouched.
func TestRunSecondPassStable(t *testing.T) {
	doc := &document.Document{Paragraphs: []string{`The “Purchase Amount” of [____] is due.`}}
	first := Run(doc)
	afterFirst := doc.Paragraphs[0]
	second := Run(doc)
	assert.Equal(t, first, second)
	assert.Equal(t, afterFirst, doc.Paragraphs[0])
}
