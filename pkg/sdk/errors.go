package ridedine

import "github.com/ridedine/ridedine/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery      = domain.ErrInvalidQuery
	ErrMalformedRecord   = domain.ErrMalformedRecord
	ErrCatalogNotLoaded  = domain.ErrCatalogNotLoaded
	ErrSourceUnavailable = domain.ErrSourceUnavailable
	ErrNotFound          = domain.ErrNotFound
)

// MalformedFieldError carries the record position and field of a malformed vendor row.
type MalformedFieldError = domain.MalformedFieldError
