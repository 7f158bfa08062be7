package extract

import (
	"regexp"
	"strings"

	"docfill/internal/normalize"
	"docfill/internal/placeholder"
)

// scoreTokens rank money keys against a bare amount in the message; each
// token counts once whether it appears in the key or its hint.
var scoreTokens = []string{
	"purchase", "price", "amount", "consideration", "principal", "cap", "valuation",
}

var currencyRe = regexp.MustCompile(`\$\s*\d[\d,.]*|\d[\d,.]*\s*\$|\b\d[\d,.]*\b`)

// fallbackExtract covers messages the collaborator produced nothing for: a
// currency-like amount goes to the sole pending MONEY key directly, or with
// several to the best-scoring one; a recognizable date phrase goes to the
// first pending DATE key. Ties on score, including all-zero scores, break in
// pending order.
func fallbackExtract(message string, pending []string, types map[string]placeholder.Type) map[string]string {
	out := map[string]string{}

	if m := currencyRe.FindString(message); m != "" && strings.ContainsAny(m, "0123456789") {
		var moneyKeys []string
		for _, key := range pending {
			if types[key] == placeholder.TypeMoney {
				moneyKeys = append(moneyKeys, key)
			}
		}
		if len(moneyKeys) > 0 {
			bestKey := moneyKeys[0]
			bestScore := scoreMoneyKey(bestKey)
			for _, key := range moneyKeys[1:] {
				if s := scoreMoneyKey(key); s > bestScore {
					bestScore = s
					bestKey = key
				}
			}
			out[bestKey] = normalize.Money(m)
		}
	}

	if date, ok := normalize.FindDate(message); ok {
		for _, key := range pending {
			if types[key] == placeholder.TypeDate {
				out[key] = date
				break
			}
		}
	}

	return out
}

func scoreMoneyKey(key string) int {
	haystack := strings.ToLower(key + " " + placeholder.Hint(key))
	n := 0
	for _, tok := range scoreTokens {
		if strings.Contains(haystack, tok) {
			n++
		}
	}
	return n
}
