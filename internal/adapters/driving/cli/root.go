// Package cli implements the ration command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ration/internal/core/ports/driven"
	"github.com/custodia-labs/ration/internal/core/ports/driving"
	"github.com/custodia-labs/ration/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// annotationNoServices marks commands that run without wired services.
const annotationNoServices = "ration/no-services"

var (
	verbose   bool
	configDir string
	envFile   string
)

// Services holds everything the commands need. It is built once per
// invocation by the bootstrap function.
type Services struct {
	Calories driving.CalorieService
	Search   driving.SearchService
	Foraging driving.ForagingService
	Settings driving.SettingsService

	// Prompts and PromptDir back the prompt watcher in serve. Optional.
	Prompts   driven.PromptStore
	PromptDir string

	// Close releases datasets and clients. Optional.
	Close func() error
}

// Options are the global flags passed to the bootstrap function.
type Options struct {
	ConfigDir string
}

// BootstrapFunc builds the services for one invocation.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap BootstrapFunc
	app       *Services
)

// SetBootstrap installs the function that wires services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// setServices injects prebuilt services, bypassing bootstrap.
func setServices(s *Services) {
	app = s
}

var rootCmd = &cobra.Command{
	Use:   "ration",
	Short: "Survival calorie planner",
	Long: `ration estimates daily caloric needs, searches a food dataset and
suggests foraging strategies for where you are.

Run 'ration serve' to start the HTTP API used by the web form.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.ration)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationNoServices] == "true" || app != nil {
		return nil
	}

	loadEnvFile(envFile)

	if bootstrap == nil {
		return errors.New("services not configured")
	}
	s, err := bootstrap(cmd.Context(), Options{ConfigDir: configDir})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	app = s
	return nil
}

func teardown() error {
	s := app
	if s == nil || s.Close == nil {
		return nil
	}
	return s.Close()
}

// loadEnvFile loads KEY=VALUE pairs without overriding the environment.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	err := godotenv.Load(path)
	switch {
	case err == nil:
		logger.Debug("Loaded environment from %s", path)
	case errors.Is(err, fs.ErrNotExist):
	default:
		logger.Warn("Ignoring %s: %v", path, err)
	}
}
