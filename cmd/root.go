// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xkilldash9x/humanpace/internal/config"
	"github.com/xkilldash9x/humanpace/internal/observability"
	"go.uber.org/zap"
)

// runtimeState carries what PersistentPreRunE loads to the subcommands.
type runtimeState struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
}

// NewRootCommand builds a fresh command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	state := &runtimeState{v: viper.New()}

	root := &cobra.Command{
		Use:   "humanpace",
		Short: "humanpace simulates human timing for automated browsing sessions.",
		Long: `humanpace generates human-like pauses, page-load waits and thinking time,
plans session time budgets across sites and scores how human the resulting
timing looks.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(state); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			observability.InitializeLogger(state.cfg.Logger())
			observability.GetLogger().Debug("Starting humanpace", zap.String("version", Version))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&state.cfgFile, "config", "c", "", "config file (default is ./humanpace.yaml)")
	flags.Int64("seed", 0, "seed for the persona and every random draw (0 picks one from the clock)")
	flags.String("log-level", "", "log level override (debug, info, warn, error)")
	_ = state.v.BindPFlag("humanoid.seed", flags.Lookup("seed"))
	_ = state.v.BindPFlag("logger.level", flags.Lookup("log-level"))

	root.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)
	root.AddCommand(
		newSimulateCommand(state),
		newPlanCommand(state),
		newPauseCommand(state),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree and logs any failure. A cancelled context is
// reported at Info level and still returned so the caller can pick an exit code.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	defer observability.Sync()

	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		observability.GetLogger().Info("Command cancelled.")
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		observability.GetLogger().Debug("Command execution failed", zap.Error(err))
	}
	return err
}

// initializeConfig reads the config file, if any, and env overrides into state.cfg.
func initializeConfig(state *runtimeState) error {
	v := state.v
	config.SetDefaults(v)

	if state.cfgFile != "" {
		path, err := homedir.Expand(state.cfgFile)
		if err != nil {
			return fmt.Errorf("invalid config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("humanpace")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and env vars apply.
	}

	cfg, err := config.NewConfigFromViper(v)
	if err != nil {
		return err
	}
	state.cfg = cfg
	return nil
}
