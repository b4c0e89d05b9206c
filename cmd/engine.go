// File: cmd/engine.go
package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	json "github.com/json-iterator/go"
	"github.com/xkilldash9x/humanpace/internal/config"
	"github.com/xkilldash9x/humanpace/internal/humanoid"
	"github.com/xkilldash9x/humanpace/internal/observability"
)

// timing bundles an engine with the clock and scheduler it runs on.
type timing struct {
	engine    *humanoid.Humanoid
	clock     humanoid.Clock
	scheduler humanoid.Scheduler
	// rng drives caller-side choices, such as the runner's action mix.
	rng humanoid.RandomSource
}

// newTiming builds an engine from the loaded settings. Virtual mode starts a
// simulated clock at the current wall time and never blocks.
func newTiming(cfg *config.Config, virtual bool) timing {
	ec := humanoid.ConfigFromSettings(cfg.Humanoid())

	t := timing{}
	if virtual {
		vc := humanoid.NewVirtualClock(time.Now())
		t.clock, t.scheduler = vc, vc
	} else {
		t.clock, t.scheduler = humanoid.SystemClock(), humanoid.RealtimeScheduler()
	}
	ec.Clock, ec.Scheduler = t.clock, t.scheduler

	if seed := cfg.Humanoid().Seed; seed != 0 {
		t.rng = rand.New(rand.NewSource(seed + 1))
	}
	t.engine = humanoid.New(ec, observability.GetLogger())
	return t
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func validateFormat(format string) error {
	switch format {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json or text)", format)
	}
}
