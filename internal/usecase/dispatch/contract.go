package dispatch

import (
	"context"

	domagent "github.com/ridedine/ridedine/internal/domain/agent"
)

// AgentSource returns a point-in-time list of agents. The returned slice is
// owned by the caller.
type AgentSource interface {
	Snapshot(ctx context.Context) ([]domagent.Agent, error)
}
