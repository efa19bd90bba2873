package notekeep

import "github.com/kailas-cloud/notekeep/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrUnauthorized     = domain.ErrUnauthorized
	ErrEnrichmentFailed = domain.ErrEnrichmentFailed
)
