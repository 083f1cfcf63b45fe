package cli

import (
	"errors"

	"github.com/alexanderramin/mangala/internal/planfile"
	"github.com/spf13/cobra"
)

// planFlags select a wedding either from a plan file or from flags.
// Flags given alongside --plan override the file's values.
type planFlags struct {
	path      string
	weddingID string
	date      string
	rituals   []string
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "plan", "p", "", "plan file (.yaml, .yml or .json)")
	cmd.Flags().StringVar(&f.weddingID, "wedding", "", "wedding id")
	cmd.Flags().StringVar(&f.date, "date", "", "wedding date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&f.rituals, "ritual", "r", nil, "ritual id (repeatable)")
}

func (f *planFlags) resolve(cmd *cobra.Command) (*planfile.Plan, error) {
	plan := &planfile.Plan{}
	if f.path != "" {
		loaded, err := planfile.Load(f.path)
		if err != nil {
			return nil, err
		}
		plan = loaded
	}
	if cmd.Flags().Changed("wedding") {
		plan.WeddingID = f.weddingID
	}
	if cmd.Flags().Changed("date") {
		plan.WeddingDate = f.date
	}
	if cmd.Flags().Changed("ritual") {
		plan.Rituals = f.rituals
	}
	if plan.WeddingDate == "" {
		return nil, errors.New("a wedding date is required: use --plan or --date")
	}
	return plan, nil
}
