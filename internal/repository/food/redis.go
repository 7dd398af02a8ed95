package food

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ridedine/ridedine/internal/db"
	"github.com/ridedine/ridedine/internal/domain"
	"github.com/ridedine/ridedine/internal/domain/catalog"
)

// KeyVendors holds the JSON vendor array (relative to the store prefix).
const KeyVendors = "vendors"

// store is the consumer interface for the vendor key (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisSource reads the vendor array from a single key. It implements usecase/catalog.Source.
type RedisSource struct {
	store store
}

// NewRedisSource creates a Redis-backed vendor source.
func NewRedisSource(s store) *RedisSource {
	return &RedisSource{store: s}
}

// Records fetches and decodes the vendor array. A missing key is reported as
// ErrSourceUnavailable: an empty catalog must be seeded explicitly.
func (s *RedisSource) Records(ctx context.Context) ([]catalog.RawRecord, error) {
	data, err := s.store.Get(ctx, KeyVendors)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("vendors key not seeded: %w", domain.ErrSourceUnavailable)
		}
		return nil, fmt.Errorf("get vendors: %w: %w", domain.ErrSourceUnavailable, err)
	}
	return DecodeJSON(data)
}

// Replace overwrites the stored vendor array.
func (s *RedisSource) Replace(ctx context.Context, records []catalog.RawRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal vendors: %w", err)
	}
	if err := s.store.Set(ctx, KeyVendors, data); err != nil {
		return fmt.Errorf("set vendors: %w", err)
	}
	return nil
}
