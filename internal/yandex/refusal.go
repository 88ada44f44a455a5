package yandex

import "strings"

// refusalMarker is prepended by the backend's safety layer.
const refusalMarker = "⛔"

// refusalPhrases are known content-policy decline wordings.
var refusalPhrases = []string{
	"не могу обсуждать",
	"поговорим о чём-нибудь ещё",
	"я не могу ответить",
	"нарушает правила",
}

// isRefusal reports whether generated text is a content-policy decline
// rather than the requested content. Refusals are passed to the user
// verbatim, skipping normal post-processing.
func isRefusal(text string) bool {
	if strings.Contains(text, refusalMarker) {
		return true
	}
	lower := strings.ToLower(text)
	for _, ph := range refusalPhrases {
		if strings.Contains(lower, ph) {
			return true
		}
	}
	return false
}
