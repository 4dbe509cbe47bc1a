// Package liveness decides whether a fully-qualified domain name is
// "alive": its registerable apex is a registered, delegated name, and the
// FQDN itself actually resolves.
package liveness

import "github.com/dnsvitals/liveness/internal/model"

// ApexResult is the outcome of IsApexAlive / a FqdnChecker's internal apex
// delegation. RegisterableDomain is nil iff the input could not be reduced
// to a registerable name, in which case Alive is always false.
type ApexResult = model.ApexResult

// FqdnResult is the outcome of IsFqdnAlive.
type FqdnResult = model.FqdnResult
