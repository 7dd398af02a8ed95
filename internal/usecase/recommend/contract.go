package recommend

import domcat "github.com/ridedine/ridedine/internal/domain/catalog"

// Catalog exposes the active vendor index snapshot.
type Catalog interface {
	Current() (*domcat.Index, error)
}
