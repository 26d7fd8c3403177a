package votes

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fixed prose of the composition grammar.
const (
	officialJoiner      = ", mas, de ofício, "
	nonKnowledgeOpening = "Não conhecer do recurso"
	appealAdmitted      = "Conhecer do recurso."
)

// ComposeInput carries the resolved template fragments for one vote. Fields
// irrelevant to the knowledge type are ignored: Preliminary holds the variant
// already selected by the preliminary outcome, Merit holds the merit template
// text, Official the ex-officio directive. Empty strings mean "not selected".
type ComposeInput struct {
	Knowledge   KnowledgeType
	Outcome     Outcome
	Preliminary string
	Merit       string
	Official    string
}

// Compose synthesizes the vote text from structured choices. It is pure and
// deterministic and never fails: illegal combinations (which callers reject
// beforehand) yield an empty string.
//
// Every fragment is normalized before composition: surrounding whitespace is
// trimmed, one trailing period is stripped, and the first character is
// lower-cased unless the fragment opens the sentence. The ex-officio
// directive is only consulted when the preliminary objection is accepted or
// the vote reaches the merits.
func Compose(in ComposeInput) string {
	switch in.Knowledge {
	case NonKnowledge:
		return composeNonKnowledge(in)
	case Knowledge:
		return composeKnowledge(in)
	}
	return ""
}

func composeNonKnowledge(in ComposeInput) string {
	official := in.Official
	if in.Outcome != OutcomeAccept {
		official = ""
	}

	preliminary := normalize(in.Preliminary, true)

	switch {
	case preliminary != "" && official == "":
		return preliminary + "."
	case preliminary != "" && official != "":
		return preliminary + officialJoiner + normalize(official, false) + "."
	case preliminary == "" && official != "":
		return nonKnowledgeOpening + officialJoiner + normalize(official, false) + "."
	case in.Outcome == OutcomeReject:
		// Rejecting the preliminary objection admits the appeal for
		// substantive review.
		return appealAdmitted
	}

	return ""
}

func composeKnowledge(in ComposeInput) string {
	merit := normalize(in.Merit, true)
	if merit == "" {
		return ""
	}

	if in.Official == "" {
		return merit + "."
	}

	return merit + officialJoiner + normalize(in.Official, false) + "."
}

// normalize trims a fragment, strips one trailing period, and lower-cases the
// first character unless the fragment opens the sentence.
func normalize(fragment string, opening bool) string {
	fragment = strings.TrimSpace(fragment)
	fragment = strings.TrimSuffix(fragment, ".")

	if fragment == "" || opening {
		return fragment
	}

	first, size := utf8.DecodeRuneInString(fragment)
	return string(unicode.ToLower(first)) + fragment[size:]
}
