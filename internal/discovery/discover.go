// Package discovery scans a document for bracketed blanks, renames generic
// blanks to semantic keys derived from nearby context, and reports the set of
// discovered keys. It runs once per document at ingestion; named blanks are
// trusted verbatim and never reinterpreted.
package discovery

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"docfill/internal/document"
)

// Span patterns. A generic blank is a bracket pair enclosing only a run of
// underscores; a named span carries 1-60 non-bracket characters.
var (
	genericRe     = regexp.MustCompile(`\[\s*_{2,}\s*\]`)
	genericFullRe = regexp.MustCompile(`^\[\s*_{2,}\s*\]$`)
	namedRe       = regexp.MustCompile(`\[[^\[\]\r\n]{1,60}\]`)
	quoteRe       = regexp.MustCompile(`[“"]([^”"]+)[”"]`)

	trailingJunkRe = regexp.MustCompile(`[$()\[\]]+$`)
	bracketNoiseRe = regexp.MustCompile(`[\[\]()$]+`)
	clauseSplitRe  = regexp.MustCompile(`[.;:\n]`)
	spaceRe        = regexp.MustCompile(`\s+`)
)

// Tokens that likely name money, dates, and parties; used when a clause near a
// blank has to qualify as a label.
var (
	moneyTokens    = []string{"purchase amount", "purchase price", "price", "amount", "consideration", "principal", "valuation cap", "cap"}
	dateTokens     = []string{"date", "effective date", "closing date", "date of safe"}
	companyTokens  = []string{"company", "issuer", "corporation", "startup", "llc", "inc"}
	investorTokens = []string{"investor", "purchaser", "buyer", "lender", "holder"}
)

// fallbackLabel names a generic blank when no context rule matches.
const fallbackLabel = "Blank"

type span struct {
	start, end int
	generic    bool
}

// RewriteUnit processes one text unit: every blank is located, generic blanks
// are renamed from surrounding context (enumerated with #2, #3… when the same
// label repeats within this pass), and named blanks are kept verbatim. It
// returns the rewritten text and the keys in order of appearance; untouched
// text is preserved byte for byte. A unit without a bracket pair is returned
// unchanged with no keys.
func RewriteUnit(text string) (string, []string) {
	if !strings.Contains(text, "[") || !strings.Contains(text, "]") {
		return text, nil
	}

	var spans []span
	for _, loc := range genericRe.FindAllStringIndex(text, -1) {
		spans = append(spans, span{loc[0], loc[1], true})
	}
	for _, loc := range namedRe.FindAllStringIndex(text, -1) {
		if genericFullRe.MatchString(text[loc[0]:loc[1]]) {
			continue
		}
		spans = append(spans, span{loc[0], loc[1], false})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var (
		out  strings.Builder
		keys []string
		last int
		dup  = map[string]int{}
	)
	for _, sp := range spans {
		out.WriteString(text[last:sp.start])
		frag := text[sp.start:sp.end]
		last = sp.end

		if !sp.generic {
			out.WriteString(frag)
			keys = append(keys, frag)
			continue
		}

		label := labelNear(text[:sp.start], text[sp.end:])
		if label == "" {
			label = fallbackLabel
		}
		key := "[" + label + "]"
		dup[key]++
		if n := dup[key]; n > 1 {
			key = fmt.Sprintf("%s#%d", key, n)
		}
		out.WriteString(key)
		keys = append(keys, key)
	}
	out.WriteString(text[last:])
	return out.String(), keys
}

// Run rewrites every text unit of doc in place (main body first, then table
// cells) and returns the discovered keys deduplicated in first-appearance
// order across the whole document. Units without a bracket pair are skipped.
func Run(doc *document.Document) []string {
	var found []string
	for _, u := range doc.TextUnits() {
		text := u.Text()
		if !strings.Contains(text, "[") || !strings.Contains(text, "]") {
			continue
		}
		rewritten, keys := RewriteUnit(text)
		if len(keys) > 0 {
			u.SetText(rewritten)
			found = append(found, keys...)
		}
	}

	seen := make(map[string]struct{}, len(found))
	unique := make([]string, 0, len(found))
	for _, k := range found {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}
	return unique
}

// labelNear derives a semantic label for a generic blank from its surrounding
// text. Priority: the last quoted phrase before the blank, then a token-bearing
// clause within the preceding ~160 characters, then a quoted phrase right
// after, then a canonical money/date token within ±200 characters. An empty
// result means no rule matched.
func labelNear(before, after string) string {
	before = trailingJunkRe.ReplaceAllString(strings.TrimSpace(before), "")

	if q := lastQuoted(before); q != "" {
		return q
	}

	tail := tailBytes(before, 160)
	tail = bracketNoiseRe.ReplaceAllString(tail, "")
	chunks := clauseSplitRe.Split(tail, -1)
	if len(chunks) > 0 {
		cand := strings.TrimSpace(chunks[len(chunks)-1])
		if hasLabelToken(cand) {
			cand = spaceRe.ReplaceAllString(cand, " ")
			cand = strings.Trim(cand, " -:")
			if cand != "" {
				return titleCase(cand)
			}
		}
	}

	head := headBytes(after, 120)
	head = bracketNoiseRe.ReplaceAllString(head, "")
	for _, m := range quoteRe.FindAllStringSubmatch(head, -1) {
		if p := usablePhrase(m[1]); p != "" {
			return p
		}
	}

	combo := strings.ToLower(tailBytes(before, 200) + headBytes(after, 200))
	for _, tok := range moneyTokens {
		if strings.Contains(combo, tok) {
			return titleCase(tok)
		}
	}
	for _, tok := range dateTokens {
		if strings.Contains(combo, tok) {
			return titleCase(tok)
		}
	}
	return ""
}

// lastQuoted returns the last usable quoted phrase in s, or "".
func lastQuoted(s string) string {
	ms := quoteRe.FindAllStringSubmatch(s, -1)
	for i := len(ms) - 1; i >= 0; i-- {
		if p := usablePhrase(ms[i][1]); p != "" {
			return p
		}
	}
	return ""
}

// usablePhrase trims a quoted capture and keeps it only if it is 2-60
// characters with no nested brackets.
func usablePhrase(raw string) string {
	p := strings.TrimSpace(raw)
	if len(p) < 2 || len(p) > 60 || strings.ContainsAny(p, "[]") {
		return ""
	}
	return p
}

// hasLabelToken reports whether the clause carries any money/date/company/
// investor token.
func hasLabelToken(clause string) bool {
	l := strings.ToLower(clause)
	for _, group := range [][]string{moneyTokens, dateTokens, companyTokens, investorTokens} {
		for _, tok := range group {
			if strings.Contains(l, tok) {
				return true
			}
		}
	}
	return false
}

// titleCase capitalizes each word, lowering the rest of the word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r := []rune(strings.ToLower(w))
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// tailBytes returns up to the last n bytes of s.
func tailBytes(s string, n int) string {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

// headBytes returns up to the first n bytes of s.
func headBytes(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
