// File: cmd/simulate.go
package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/xkilldash9x/humanpace/internal/config"
	"github.com/xkilldash9x/humanpace/internal/observability"
	"github.com/xkilldash9x/humanpace/internal/session"
)

type simulateFlags struct {
	sites          []string
	targetCount    int
	enforceMinimum bool
	virtual        bool
	format         string
}

func newSimulateCommand(state *runtimeState) *cobra.Command {
	f := &simulateFlags{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a simulated browsing session across sites",
		Long: `Plans a session budget, walks every site in order and issues human-like
pauses with a rising fatigue level. With --virtual (the default) the session
runs on a simulated clock and finishes instantly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(f.format); err != nil {
				return err
			}
			applySimulateFlags(cmd, state.cfg, f)

			sc := state.cfg.Session()
			if len(sc.Sites) == 0 {
				return errors.New("no sites to visit: pass --sites or set session.sites")
			}

			t := newTiming(state.cfg, sc.VirtualTime)
			runner := session.NewRunner(t.engine, sc, observability.GetLogger(), t.clock, t.scheduler, t.rng)

			report, err := runner.Run(cmd.Context(), sc.Sites)
			if report != nil {
				if werr := renderReport(cmd.OutOrStdout(), f.format, report); werr != nil && err == nil {
					err = werr
				}
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&f.sites, "sites", nil, "comma-separated site names to visit in order")
	flags.IntVar(&f.targetCount, "target-count", 0, "number of work units the budget is sized for")
	flags.BoolVar(&f.enforceMinimum, "enforce-minimum", false, "size the budget from the target count instead of fast mode")
	flags.BoolVar(&f.virtual, "virtual", true, "run on a simulated clock")
	flags.StringVarP(&f.format, "format", "o", "text", "output format: text or json")
	return cmd
}

// applySimulateFlags lets explicitly set flags override the loaded configuration.
func applySimulateFlags(cmd *cobra.Command, cfg config.Interface, f *simulateFlags) {
	flags := cmd.Flags()
	if flags.Changed("sites") {
		cfg.SetSessionSites(f.sites)
	}
	if flags.Changed("target-count") {
		cfg.SetSessionTargetCount(f.targetCount)
	}
	if flags.Changed("enforce-minimum") {
		cfg.SetSessionEnforceMinimum(f.enforceMinimum)
	}
	if flags.Changed("virtual") {
		cfg.SetSessionVirtualTime(f.virtual)
	}
}

func renderReport(w io.Writer, format string, report *session.Report) error {
	if format == "json" {
		return writeJSON(w, report)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Session:\t%s\n", report.SessionID)
	fmt.Fprintf(tw, "Budget:\t%s\n", report.Budget.Round(time.Second))
	fmt.Fprintf(tw, "Elapsed:\t%s\n", report.Elapsed.Round(time.Second))
	fmt.Fprintf(tw, "Completed:\t%t\n", report.Completed)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SITE\tPRIORITY\tPAGE\tALLOCATED\tSPENT\tACTIONS\tBREAKS")
	for _, s := range report.Sites {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			s.Name, s.Priority, s.PageType,
			s.Allocated.Round(time.Second), s.Spent.Round(time.Second),
			s.Actions, s.Breaks)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Pauses:\t%d\n", report.Stats.TotalPauses)
	fmt.Fprintf(tw, "Pause time:\t%s (%.1f%%)\n", report.Stats.TotalPauseTime.Round(time.Second), report.Stats.PauseTimePercentage)
	fmt.Fprintf(tw, "Average pause:\t%s\n", report.Stats.AveragePause.Round(time.Millisecond))
	fmt.Fprintf(tw, "Humanness:\t%d/100\n", report.Humanness)
	fmt.Fprintf(tw, "Consistency:\t%.3f\n", report.Consistency)
	return tw.Flush()
}
