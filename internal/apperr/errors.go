package apperr

import "errors"

// ErrInvalidInput is returned by the checker and heuristic constructors when
// a required collaborator is missing from their Config.
// Use errors.Is(err, apperr.ErrInvalidInput) to detect it uniformly.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequestFailed is returned when a DNS or WHOIS request fails at the
// transport level or the upstream responds with an unusable status.
// Use errors.Is(err, apperr.ErrRequestFailed) to detect request failures uniformly.
var ErrRequestFailed = errors.New("request failed")

// ErrTldExtraction is returned by WhoisHeuristic when the TLD of a
// registerable apex cannot be identified at all. Never surfaces from the
// public API — ApexChecker folds it into whoisErrorCountAsAlive.
var ErrTldExtraction = errors.New("tld extraction failed")

// ErrWhoisQuery wraps a bailed-out WHOIS/RDAP client error that is
// definitive enough to stop retrying (e.g. "TLD not found"). Caught by
// ApexChecker and converted to whoisErrorCountAsAlive; never surfaces from
// the public API.
var ErrWhoisQuery = errors.New("whois query failed")
