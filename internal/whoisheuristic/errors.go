package whoisheuristic

import (
	"fmt"

	"github.com/dnsvitals/liveness/internal/apperr"
)

// QueryError wraps a bailed-out underlying WHOIS/RDAP client error together
// with the offending domain. It matches errors.Is(err, apperr.ErrWhoisQuery).
// ApexChecker converts it, like any error from HasBeenRegistered, to
// whoisErrorCountAsAlive.
type QueryError struct {
	Domain string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("whois query for %q bailed: %v", e.Domain, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func (e *QueryError) Is(target error) bool {
	return target == apperr.ErrWhoisQuery
}

// TldExtractionError reports that the WHOIS path could not even identify a
// TLD for the input. Never surfaces to the public API; ApexChecker folds it
// into whoisErrorCountAsAlive same as QueryError.
type TldExtractionError struct {
	Domain string
}

func (e *TldExtractionError) Error() string {
	return fmt.Sprintf("could not extract TLD from %q", e.Domain)
}

func (e *TldExtractionError) Is(target error) bool {
	return target == apperr.ErrTldExtraction
}
