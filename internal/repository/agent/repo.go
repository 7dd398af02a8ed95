package agent

import (
	"context"
	"fmt"
	"sort"

	"github.com/ridedine/ridedine/internal/db"
	"github.com/ridedine/ridedine/internal/domain"
	domagent "github.com/ridedine/ridedine/internal/domain/agent"
	"github.com/ridedine/ridedine/internal/domain/geo"
)

// store is the consumer interface for agents (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, key string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// RedisRepo keeps one hash per agent and implements usecase/dispatch.AgentSource.
type RedisRepo struct {
	store store
	depot geo.Point
}

// NewRedisRepo creates an agent repository. depot is used to recompute
// the depot distance of every agent read back from storage.
func NewRedisRepo(s store, depot geo.Point) *RedisRepo {
	return &RedisRepo{store: s, depot: depot}
}

// ReplaceAll writes every agent in one pipelined round-trip, then deletes the
// hashes of agents no longer listed. It returns the number of removed agents.
func (r *RedisRepo) ReplaceAll(ctx context.Context, agents []domagent.Agent) (int, error) {
	stale, err := r.store.Scan(ctx, agentKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan agents: %w", err)
	}

	keep := make(map[string]struct{}, len(agents))
	items := make([]db.HashSetItem, len(agents))
	for i, a := range agents {
		key := agentKey(a.ID())
		keep[key] = struct{}{}
		items[i] = db.HashSetItem{Key: key, Fields: agentToHash(a)}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return 0, fmt.Errorf("hset agents: %w", err)
	}

	removed := 0
	for _, key := range stale {
		if _, ok := keep[key]; ok {
			continue
		}
		if err := r.store.Del(ctx, key); err != nil {
			return removed, fmt.Errorf("del %s: %w", key, err)
		}
		removed++
	}
	return removed, nil
}

// SetAvailability flips the availability flag of an existing agent.
func (r *RedisRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	key := agentKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check agent %s: %w", id, err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := r.store.HSet(ctx, key, map[string]string{fieldAvailable: formatBool(available)}); err != nil {
		return fmt.Errorf("hset agent %s: %w", id, err)
	}
	return nil
}

// Get retrieves a single agent by id.
func (r *RedisRepo) Get(ctx context.Context, id string) (domagent.Agent, error) {
	m, err := r.store.HGetAll(ctx, agentKey(id))
	if err != nil {
		return domagent.Agent{}, fmt.Errorf("hgetall agent %s: %w", id, err)
	}
	if len(m) == 0 {
		return domagent.Agent{}, domain.ErrNotFound
	}
	return agentFromHash(id, m, r.depot)
}

// Snapshot returns every stored agent sorted by id. The slice is owned by the caller.
func (r *RedisRepo) Snapshot(ctx context.Context) ([]domagent.Agent, error) {
	keys, err := r.store.Scan(ctx, agentKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan agents: %w: %w", domain.ErrSourceUnavailable, err)
	}
	if len(keys) == 0 {
		return []domagent.Agent{}, nil
	}
	sort.Strings(keys)

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi agents: %w: %w", domain.ErrSourceUnavailable, err)
	}

	agents := make([]domagent.Agent, 0, len(results))
	for i, m := range results {
		// Deleted between SCAN and HGETALL.
		if len(m) == 0 {
			continue
		}
		a, err := agentFromHash(idFromKey(keys[i]), m, r.depot)
		if err != nil {
			return nil, fmt.Errorf("parse agent %s: %w", keys[i], err)
		}
		agents = append(agents, a)
	}
	return agents, nil
}

// Key patterns (relative to the store prefix): agent:{id}

const keyAgentPrefix = "agent:"

func agentKey(id string) string {
	return keyAgentPrefix + id
}

func idFromKey(key string) string {
	return key[len(keyAgentPrefix):]
}
