package cli

import (
	"fmt"

	"github.com/alexanderramin/mangala/internal/cli/formatter"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/spf13/cobra"
)

func newRitualsCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rituals",
		Short: "Browse the ritual catalog",
	}
	cmd.AddCommand(
		newRitualsListCmd(app, opts),
		newRitualsShowCmd(app, opts),
	)
	return cmd
}

func newRitualsListCmd(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available rituals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rituals := app.Planning.Rituals(cmd.Context())
			return render(cmd, opts, rituals, func() string {
				return formatter.FormatRitualList(rituals)
			})
		},
	}
}

func newRitualsShowCmd(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a ritual's tasks and timing window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, ok := app.Planning.Ritual(cmd.Context(), domain.RitualType(args[0]))
			if !ok {
				return fmt.Errorf("unknown ritual %q (see 'mangala rituals list')", args[0])
			}
			return render(cmd, opts, tmpl, func() string {
				return formatter.FormatRitual(tmpl)
			})
		},
	}
}
