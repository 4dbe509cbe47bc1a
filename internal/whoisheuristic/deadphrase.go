package whoisheuristic

import "strings"

// deadPhrases is the canonical dead-phrase filter. The leading/trailing
// spaces on " is free" and " has been blocked by " are significant: they
// prevent matching inside longer unrelated words.
var deadPhrases = []string{
	"no match for",
	"does not exist",
	"not found",
	"no found",
	"no entries",
	"no data found",
	"is available for registration",
	"currently available for application",
	"no matching record",
	"no information available about domain name",
	"not been registered",
	"no match!!",
	"status: available",
	" is free",
	"no object found",
	"nothing found",
	"status: free",
	" has been blocked by ",
}

// containsDeadPhrase reports whether line (already lowercased and
// whitespace-normalized by the caller) contains any dead phrase.
func containsDeadPhrase(line string) bool {
	for _, phrase := range deadPhrases {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return false
}

// normalizeRaw lowercases raw and collapses runs of tabs/spaces to a single
// space, ahead of line-splitting.
func normalizeRaw(raw string) string {
	lower := strings.ToLower(raw)
	var b strings.Builder
	b.Grow(len(lower))
	inRun := false
	for _, r := range lower {
		if r == ' ' || r == '\t' {
			if inRun {
				continue
			}
			inRun = true
			b.WriteByte(' ')
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// rawHasDeadPhrase normalizes raw, splits it into lines on LF/CRLF, and
// tests each line against the dead-phrase filter.
func rawHasDeadPhrase(raw string) bool {
	normalized := normalizeRaw(raw)
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if containsDeadPhrase(line) {
			return true
		}
	}
	return false
}
