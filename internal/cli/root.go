// Package cli implements the mangala command tree.
package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/mangala/internal/api"
	"github.com/alexanderramin/mangala/internal/config"
	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/generator"
	"github.com/alexanderramin/mangala/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// RemoteClient is the subset of the HTTP client the commands use with
// --remote.
type RemoteClient interface {
	GenerateRitualTasks(ctx context.Context, req generator.GenerationRequest) (*generator.GenerationResponse, error)
	DetectConflicts(ctx context.Context, req conflict.DetectionRequest) (*conflict.DetectionResponse, error)
	ListConflicts(ctx context.Context, weddingID string, status domain.ConflictStatus) ([]domain.Conflict, error)
	GetConflict(ctx context.Context, conflictID string) (*domain.Conflict, error)
	ResolveConflict(ctx context.Context, conflictID, resolutionID string) (bool, error)
	DismissConflict(ctx context.Context, conflictID, reason string) (bool, error)
}

// App holds the services and settings used by CLI commands.
type App struct {
	Planning  service.PlanningService
	Conflicts service.ConflictService
	Remote    RemoteClient // nil disables --remote

	Config  config.Config
	Logger  *slog.Logger
	Metrics *api.Metrics

	IsInteractive func() bool
	Now           func() time.Time

	// RunProgram runs a bubbletea model to completion. Nil uses tea.NewProgram.
	RunProgram func(m tea.Model, in io.Reader, out io.Writer) (tea.Model, error)
	// PickResolution asks the user for one of c's options. Nil uses a huh select.
	PickResolution func(c *domain.Conflict) (string, error)
}

type globalOptions struct {
	output outputFormat
	remote bool
}

// NewRootCmd creates the top-level "mangala" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	app.defaults()
	opts := &globalOptions{output: outputTable}

	root := &cobra.Command{
		Use:           "mangala",
		Short:         "Sri Lankan wedding ritual planner and schedule conflict checker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().VarP(&opts.output, "output", "o", "output format: table, json or yaml")
	root.PersistentFlags().BoolVar(&opts.remote, "remote", false, "call the mangala server at api.endpoint instead of the local store")

	root.AddCommand(
		newRitualsCmd(app, opts),
		newTasksCmd(app, opts),
		newConflictsCmd(app, opts),
		newServeCmd(app),
	)
	return root
}

func (a *App) defaults() {
	if a.Logger == nil {
		a.Logger = slog.Default()
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.IsInteractive == nil {
		a.IsInteractive = func() bool { return false }
	}
	if a.PickResolution == nil {
		a.PickResolution = huhPickResolution
	}
	if a.RunProgram == nil {
		a.RunProgram = func(m tea.Model, in io.Reader, out io.Writer) (tea.Model, error) {
			return tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen()).Run()
		}
	}
}
