package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/mangala/internal/cli/formatter"
	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/generator"
	"github.com/spf13/cobra"
)

var errNoRemote = errors.New("--remote needs api.endpoint to be configured")

// conflictBackend is what the conflict commands and the review screen
// need. service.ConflictService satisfies it directly.
type conflictBackend interface {
	Detect(ctx context.Context, req conflict.DetectionRequest, persist bool) (*conflict.DetectionResponse, error)
	List(ctx context.Context, weddingID string, status domain.ConflictStatus) ([]*domain.Conflict, error)
	Get(ctx context.Context, id string) (*domain.Conflict, error)
	Resolve(ctx context.Context, conflictID, resolutionID string) (bool, error)
	Dismiss(ctx context.Context, conflictID, reason string) (bool, error)
}

// remoteConflicts adapts the HTTP client. The server always stores
// detection results, so persist is ignored.
type remoteConflicts struct {
	client RemoteClient
}

func (r remoteConflicts) Detect(ctx context.Context, req conflict.DetectionRequest, _ bool) (*conflict.DetectionResponse, error) {
	return r.client.DetectConflicts(ctx, req)
}

func (r remoteConflicts) List(ctx context.Context, weddingID string, status domain.ConflictStatus) ([]*domain.Conflict, error) {
	conflicts, err := r.client.ListConflicts(ctx, weddingID, status)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Conflict, len(conflicts))
	for i := range conflicts {
		out[i] = &conflicts[i]
	}
	return out, nil
}

func (r remoteConflicts) Get(ctx context.Context, id string) (*domain.Conflict, error) {
	return r.client.GetConflict(ctx, id)
}

func (r remoteConflicts) Resolve(ctx context.Context, conflictID, resolutionID string) (bool, error) {
	return r.client.ResolveConflict(ctx, conflictID, resolutionID)
}

func (r remoteConflicts) Dismiss(ctx context.Context, conflictID, reason string) (bool, error) {
	return r.client.DismissConflict(ctx, conflictID, reason)
}

func (a *App) conflictBackend(opts *globalOptions) (conflictBackend, error) {
	if !opts.remote {
		return a.Conflicts, nil
	}
	if a.Remote == nil {
		return nil, errNoRemote
	}
	return remoteConflicts{client: a.Remote}, nil
}

func (a *App) generateTasks(cmd *cobra.Command, opts *globalOptions, req generator.GenerationRequest) (*generator.GenerationResponse, error) {
	if !opts.remote {
		return a.Planning.GenerateTasks(cmd.Context(), req)
	}
	if a.Remote == nil {
		return nil, errNoRemote
	}
	defer a.spin(cmd, "Contacting planning server...")()
	return a.Remote.GenerateRitualTasks(cmd.Context(), req)
}

// spin shows a spinner on stderr for interactive sessions and returns the
// function that stops it.
func (a *App) spin(cmd *cobra.Command, message string) func() {
	if !a.IsInteractive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}
