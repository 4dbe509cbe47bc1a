package whoisheuristic

// outcome is either a sentinel authoritative non-answer, or the actual
// WHOIS response tree to scan. Encoding this as a sum type (rather than
// sentinel strings layered over the regular return value) lets the retry
// layer distinguish "authoritative non-answer, do not retry" from
// "transient failure, retry" without string comparisons leaking past the
// classifier.
type outcome struct {
	sentinel sentinel
	node     *Node
}

type sentinel int

const (
	sentinelNone sentinel = iota
	// sentinelTldUnsupported — "TLD for ... not supported": assume registered,
	// we have no signal either way.
	sentinelTldUnsupported
	// sentinelNoWhois — "No WHOIS data found": authoritative negative.
	sentinelNoWhois
)

func nodeOutcome(n *Node) outcome {
	return outcome{sentinel: sentinelNone, node: n}
}

func sentinelOutcome(s sentinel) outcome {
	return outcome{sentinel: s}
}
