package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	sb "nickandperla.net/sort_bench"
)

var (
	configPath string
	seed       int64
	element    string
	logLevel   string

	// toolConfig is loaded once by the root command's pre-run hook.
	toolConfig *sb.ToolConfig
)

var rootCmd = &cobra.Command{
	Use:   "sortbench",
	Short: "Compare insertion, heap, shell and quick sort on generated data",
	Long: `sortbench generates integer or floating point arrays under several
distributions, sorts them with four classical algorithms and measures how
long each takes. Without a subcommand it starts the interactive menu.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	bindGlobalFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(menuCmd, generateCmd, sortCmd, benchCmd, reportCmd)
}

func bindGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVar(&configPath, "config", "./sortbench.toml", "The config file to use. Missing default file means built-in defaults")
	flags.Int64Var(&seed, "seed", 0, "Seed for the random source (0 = seed from system entropy)")
	flags.StringVar(&element, "type", sb.ElementInt, "Element type: int or float")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("sortbench: %v", err)
	}
}

// setup loads the config file and applies the global flag overrides.
func setup(cmd *cobra.Command, _ []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		config.Seed = seed
	}
	if flags.Changed("type") {
		if err := sb.ValidateElement(element); err != nil {
			return err
		}
		config.Element = element
	}
	if flags.Changed("log-level") {
		config.Log.Level = logLevel
	}
	if err := config.Log.Apply(); err != nil {
		return err
	}

	toolConfig = config
	return nil
}

func loadConfig(cmd *cobra.Command) (*sb.ToolConfig, error) {
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
			return sb.DefaultToolConfig(), nil
		}
		return nil, fmt.Errorf("unable to load sortbench config: %w", err)
	}
	config, err := sb.LoadToolConfig(configPath)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Loaded config %s", configPath)
	return config, nil
}

// interruptContext is cancelled on SIGINT so a long benchmark stops between
// trials.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
