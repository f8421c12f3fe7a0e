package assistant

import (
	"strings"
	"unicode"
)

// Intents recognised in a message.
const (
	IntentAvailability = "available_slots"
	IntentBook         = "book_appointment"
	IntentCancel       = "cancel_appointment"
	IntentOffice       = "office_info"
	IntentList         = "list_appointments"
	IntentHelp         = "help"
	IntentGeneral      = "general"
)

// Rules are checked in order; the first match wins.
var intentRules = []struct {
	intent   string
	keywords []string
}{
	{IntentAvailability, []string{"available", "free", "opening", "open slot", "open appointment", "nearest", "next", "earliest", "find"}},
	{IntentBook, []string{"book", "schedule", "reserve", "make appointment"}},
	{IntentCancel, []string{"cancel", "reschedule", "delete", "remove"}},
	{IntentOffice, []string{"hours", "office", "when open", "you open", "open on", "policy"}},
	{IntentList, []string{"my appointment", "show", "view", "list"}},
	{IntentHelp, []string{"help", "hi", "hello", "hey", "what can you do"}},
}

// Classify picks the intent of message by keyword.
func Classify(message string) string {
	lower := strings.ToLower(message)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if matches(lower, words, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}

// matches treats multi-word keywords as phrases. Single words must match a whole
// word, or prefix one when the keyword is long enough ("booking", "cancelled").
func matches(lower string, words []string, kw string) bool {
	if strings.Contains(kw, " ") {
		return strings.Contains(lower, kw)
	}
	for _, w := range words {
		if w == kw || (len(kw) >= 4 && strings.HasPrefix(w, kw)) {
			return true
		}
	}
	return false
}
