package llm

import (
	"encoding/json"
	"strings"
)

// BuildSystemPrompt composes the instruction that pins the collaborator to a
// JSON-only, pending-keys-only contract with per-type display formatting.
// Display casing for COMPANY and PERSON values is enforced here, in the
// contract, not re-checked locally.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a legal placeholder extraction assistant for an equity investment agreement document.",
		"You must return ONLY a JSON object.",
		"You may ONLY include keys from the pending placeholder list provided.",
		"For each key, use the 'hint' to decide if the user message provides that value.",
		"If the user message does not clearly provide a value for a placeholder, return null for that key, or omit it.",
		"NEVER invent data. NEVER output extra keys. No explanations.",
		"Formatting:",
		"- COMPANY -> UPPERCASE (add ', INC.' ONLY if explicitly stated)",
		"- PERSON -> Proper Case (Jane Doe)",
		"- DATE -> Month D, YYYY (honor 'this year', 'last year', 'current year')",
		"- MONEY -> $X,XXX or $X,XXX,XXX (prefix with $)",
	}
	return strings.Join(parts, "\n")
}

// BuildUserPrompt packages the pending key/type/hint list with the raw chat
// message. Deterministic for identical inputs.
func BuildUserPrompt(req SuggestRequest) string {
	list, _ := json.MarshalIndent(req.Pending, "", "  ")

	var b strings.Builder
	b.WriteString("Pending placeholders (key, type, hint):\n")
	b.Write(list)
	b.WriteString("\n\nUser message:\n")
	b.WriteString(req.Message)
	b.WriteString("\n\nReturn ONLY a JSON mapping for the pending keys where the message clearly provides the value.\n")
	b.WriteString("If the message doesn't provide a value for a pending key, omit that key or set it to null.")
	return b.String()
}
