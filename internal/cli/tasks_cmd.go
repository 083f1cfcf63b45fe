package cli

import (
	"fmt"

	"github.com/alexanderramin/mangala/internal/cli/formatter"
	"github.com/alexanderramin/mangala/internal/generator"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Generate and track ritual preparation tasks",
	}
	cmd.AddCommand(
		newTasksGenerateCmd(app, opts),
		newTasksTimelineCmd(app, opts),
		newTasksValidateCmd(app, opts),
	)
	return cmd
}

func newTasksGenerateCmd(app *App, opts *globalOptions) *cobra.Command {
	var flags planFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate dated tasks for the selected rituals",
		Example: `  mangala tasks generate --date 2026-08-20 --ritual poruwa --ritual reception
  mangala tasks generate --plan wedding.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			resp, err := app.generateTasks(cmd, opts, plan.GenerationRequest())
			if err != nil {
				return err
			}
			return render(cmd, opts, resp, func() string {
				return formatter.FormatGeneration(resp, app.Now())
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newTasksTimelineCmd(app *App, opts *globalOptions) *cobra.Command {
	var flags planFlags
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show each ritual's tasks as overdue, due soon or upcoming",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			entries, err := app.Planning.Timeline(cmd.Context(), plan.Rituals, plan.WeddingDate)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []generator.TimelineEntry{}
			}
			return render(cmd, opts, entries, func() string {
				return formatter.FormatTimeline(entries)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newTasksValidateCmd(app *App, opts *globalOptions) *cobra.Command {
	var flags planFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the wedding date against each ritual's timing window",
		Long:  "Check the wedding date against each ritual's timing window. Exits non-zero when errors are found.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			res := app.Planning.Validate(cmd.Context(), plan.Rituals, plan.WeddingDate)
			if err := render(cmd, opts, res, func() string {
				return formatter.FormatValidation(res)
			}); err != nil {
				return err
			}
			if !res.IsValid {
				return fmt.Errorf("validation failed with %d error(s)", len(res.Errors))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
