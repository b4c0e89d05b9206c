// File: cmd/plan.go
package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/xkilldash9x/humanpace/internal/humanoid"
)

// sitePlan is one row of a session plan.
type sitePlan struct {
	humanoid.SiteTimeAllocation
	Transition time.Duration `json:"transition"`
}

// planOutput is the result of the plan command.
type planOutput struct {
	SessionID string        `json:"session_id"`
	Budget    time.Duration `json:"budget"`
	Sites     []sitePlan    `json:"sites"`
}

func newPlanCommand(state *runtimeState) *cobra.Command {
	var (
		siteCount      int
		targetCount    int
		enforceMinimum bool
		format         string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a session budget and its split across sites without pausing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if siteCount < 0 {
				return errors.New("--site-count must not be negative")
			}
			if cmd.Flags().Changed("target-count") {
				state.cfg.SetSessionTargetCount(targetCount)
			}
			if cmd.Flags().Changed("enforce-minimum") {
				state.cfg.SetSessionEnforceMinimum(enforceMinimum)
			}
			sc := state.cfg.Session()

			engine := newTiming(state.cfg, true).engine
			out := planOutput{
				SessionID: engine.SessionID(),
				Budget:    engine.CalculateMinimumNavigationTime(sc.TargetCount, sc.EnforceMinimum),
				Sites:     []sitePlan{},
			}
			for _, a := range engine.DistributeTimeAcrossSites(out.Budget, siteCount) {
				out.Sites = append(out.Sites, sitePlan{
					SiteTimeAllocation: a,
					Transition:         engine.CalculateSiteTransitionTime(a.SiteIndex, siteCount),
				})
			}

			w := cmd.OutOrStdout()
			if format == "json" {
				return writeJSON(w, out)
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Budget:\t%s\n\n", out.Budget.Round(time.Second))
			fmt.Fprintln(tw, "SITE\tPRIORITY\tALLOCATED\tTRANSITION")
			for _, s := range out.Sites {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.SiteIndex, s.Priority,
					s.AllocatedTime.Round(time.Second), s.Transition.Round(time.Millisecond))
			}
			return tw.Flush()
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&siteCount, "site-count", "n", 5, "number of sites to plan for")
	flags.IntVar(&targetCount, "target-count", 0, "number of work units the budget is sized for")
	flags.BoolVar(&enforceMinimum, "enforce-minimum", false, "size the budget from the target count instead of fast mode")
	flags.StringVarP(&format, "format", "o", "text", "output format: text or json")
	return cmd
}
