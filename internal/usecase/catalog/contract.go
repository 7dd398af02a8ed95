package catalog

import (
	"context"

	domcat "github.com/ridedine/ridedine/internal/domain/catalog"
)

// Source delivers raw vendor records.
type Source interface {
	Records(ctx context.Context) ([]domcat.RawRecord, error)
}
