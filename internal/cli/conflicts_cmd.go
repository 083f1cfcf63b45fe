package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mangala/internal/cli/formatter"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/planfile"
	"github.com/spf13/cobra"
)

func newConflictsCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conflicts",
		Aliases: []string{"conflict"},
		Short:   "Detect and manage schedule conflicts",
	}
	cmd.AddCommand(
		newConflictsDetectCmd(app, opts),
		newConflictsListCmd(app, opts),
		newConflictsShowCmd(app, opts),
		newConflictsResolveCmd(app, opts),
		newConflictsDismissCmd(app, opts),
		newConflictsReviewCmd(app, opts),
	)
	return cmd
}

func newConflictsDetectCmd(app *App, opts *globalOptions) *cobra.Command {
	var planPath string
	var save bool
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Check a plan's events and vendors for conflicts",
		Long: `Check a plan's events and vendors for timing overlaps, tight buffers
and vendor double bookings. With --save the wedding's active conflicts are
replaced by the new results. The server always saves results with --remote.`,
		Example: "  mangala conflicts detect --plan wedding.yaml --save",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if planPath == "" {
				return errors.New("--plan is required")
			}
			backend, err := app.conflictBackend(opts)
			if err != nil {
				return err
			}
			plan, err := planfile.Load(planPath)
			if err != nil {
				return err
			}

			stop := func() {}
			if opts.remote {
				stop = app.spin(cmd, "Checking schedule...")
			}
			resp, err := backend.Detect(cmd.Context(), plan.DetectionRequest(), save)
			stop()
			if err != nil {
				return err
			}
			return render(cmd, opts, resp, func() string {
				out := formatter.FormatDetection(resp)
				if save {
					out += "\n" + formatter.Dim(fmt.Sprintf("Saved %d conflict(s) for wedding %s.", len(resp.Conflicts), plan.WeddingID)) + "\n"
				}
				return out
			})
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "plan file (.yaml, .yml or .json)")
	cmd.Flags().BoolVar(&save, "save", false, "store the results, replacing the wedding's active conflicts")
	return cmd
}

func newConflictsListCmd(app *App, opts *globalOptions) *cobra.Command {
	var weddingID, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored conflicts for a wedding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatus(status)
			if err != nil {
				return err
			}
			backend, err := app.conflictBackend(opts)
			if err != nil {
				return err
			}
			conflicts, err := backend.List(cmd.Context(), weddingID, st)
			if err != nil {
				return err
			}
			if conflicts == nil {
				conflicts = []*domain.Conflict{}
			}
			return render(cmd, opts, conflicts, func() string {
				return formatter.FormatConflictList(conflicts)
			})
		},
	}
	cmd.Flags().StringVarP(&weddingID, "wedding", "w", "", "wedding id (required)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status: active, resolved or dismissed")
	_ = cmd.MarkFlagRequired("wedding")
	return cmd
}

func newConflictsShowCmd(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a stored conflict and its resolution options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := app.conflictBackend(opts)
			if err != nil {
				return err
			}
			c, err := backend.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, opts, c, func() string {
				return formatter.FormatConflict(c)
			})
		},
	}
}

func newConflictsResolveCmd(app *App, opts *globalOptions) *cobra.Command {
	var option string
	cmd := &cobra.Command{
		Use:   "resolve ID",
		Short: "Resolve a conflict with one of its options",
		Long: `Resolve a conflict with one of its options. --option takes the option id
or its number as shown by 'conflicts show'. Without --option an interactive
terminal offers a picker. With --remote the conflict is read from the server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := app.conflictBackend(opts)
			if err != nil {
				return err
			}
			conflictID := args[0]
			if option == "" && !app.IsInteractive() {
				return errors.New("--option is required when not running interactively")
			}
			c, err := backend.Get(cmd.Context(), conflictID)
			if err != nil {
				return err
			}

			var resolutionID string
			if option != "" {
				resolutionID, err = optionRef(c, option)
			} else {
				resolutionID, err = app.PickResolution(c)
			}
			if err != nil {
				return err
			}

			ok, err := backend.Resolve(cmd.Context(), conflictID, resolutionID)
			if err != nil {
				return err
			}
			return render(cmd, opts, successDoc{Success: ok}, func() string {
				return formatter.StyleGreen.Render("✔ Resolved "+conflictID) + "\n"
			})
		},
	}
	cmd.Flags().StringVar(&option, "option", "", "resolution option id or number")
	return cmd
}

func newConflictsDismissCmd(app *App, opts *globalOptions) *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "dismiss ID",
		Short: "Dismiss a conflict, recording why",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := app.conflictBackend(opts)
			if err != nil {
				return err
			}
			ok, err := backend.Dismiss(cmd.Context(), args[0], reason)
			if err != nil {
				return err
			}
			return render(cmd, opts, successDoc{Success: ok}, func() string {
				return formatter.Dim("○ Dismissed "+args[0]) + "\n"
			})
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "why the conflict does not need action (required)")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

type successDoc struct {
	Success bool `json:"success" yaml:"success"`
}

func parseStatus(s string) (domain.ConflictStatus, error) {
	switch st := domain.ConflictStatus(strings.ToLower(s)); st {
	case "", domain.ConflictActive, domain.ConflictResolved, domain.ConflictDismissed:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q: use active, resolved or dismissed", s)
}

// optionRef accepts an option id or a 1-based option number.
func optionRef(c *domain.Conflict, ref string) (string, error) {
	if _, ok := c.Option(ref); ok {
		return ref, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c.ResolutionOptions) {
		return c.ResolutionOptions[n-1].ID, nil
	}
	return "", fmt.Errorf("conflict %s has no option %q (it has %d)", c.ID, ref, len(c.ResolutionOptions))
}
