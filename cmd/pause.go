// File: cmd/pause.go
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xkilldash9x/humanpace/internal/humanoid"
)

// pauseOutput is the result of the pause command.
type pauseOutput struct {
	Context    humanoid.PauseContext `json:"context"`
	Known      bool                  `json:"known_context"`
	Fatigue    float64               `json:"fatigue"`
	Duration   time.Duration         `json:"duration"`
	DurationMs int64                 `json:"duration_ms"`
	Slept      bool                  `json:"slept"`
	Profile    humanoid.Profile      `json:"profile"`
}

func newPauseCommand(state *runtimeState) *cobra.Command {
	var (
		fatigue    float64
		urgency    float64
		complexity float64
		dryRun     bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "pause <context>",
		Short: "Compute, and unless --dry-run perform, one human-like pause",
		Long: `Computes a pause for the given context (reading, decision, click_hesitation,
page_processing, hover, distraction, fatigue_break, content_analysis,
typing_delay, scroll_pause). Unknown contexts use the decision range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			pauseCtx := humanoid.PauseContext(args[0])

			opts := &humanoid.PauseOptions{}
			if cmd.Flags().Changed("urgency") {
				opts.Urgency = humanoid.Float(urgency)
			}
			if cmd.Flags().Changed("complexity") {
				opts.Complexity = humanoid.Float(complexity)
			}

			engine := newTiming(state.cfg, dryRun).engine
			out := pauseOutput{
				Context: pauseCtx,
				Known:   humanoid.NewContextTable(nil).Known(pauseCtx),
				Fatigue: fatigue,
				Profile: engine.Profile(),
			}

			if dryRun {
				out.Duration = engine.CalculatePauseTime(pauseCtx, fatigue, opts)
			} else {
				d, err := engine.HumanPause(cmd.Context(), pauseCtx, fatigue, opts)
				if err != nil {
					return fmt.Errorf("pause interrupted: %w", err)
				}
				out.Duration, out.Slept = d, true
			}
			out.DurationMs = out.Duration.Milliseconds()

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s pause: %s\n", pauseCtx, out.Duration)
			return err
		},
	}

	flags := cmd.Flags()
	flags.Float64VarP(&fatigue, "fatigue", "f", 0, "fatigue level in [0,1]")
	flags.Float64Var(&urgency, "urgency", 0, "urgency in [0,1]; shortens the pause")
	flags.Float64Var(&complexity, "complexity", 0, "complexity in [0,1]; lengthens the pause")
	flags.BoolVar(&dryRun, "dry-run", false, "only compute the pause, do not wait")
	flags.StringVarP(&format, "format", "o", "text", "output format: text or json")
	return cmd
}
