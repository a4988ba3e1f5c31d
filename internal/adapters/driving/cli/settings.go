package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ration/internal/adapters/driven/ai"
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/services"
)

var settingsJSON bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change server, dataset and LLM settings.

Settings are resolved from the environment, then .env, then config.toml,
then built-in defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Writes a value to config.toml. Omit the value of llm.api_key to enter
it without echo.

Keys:
  ` + strings.Join(settingKeys(), "\n  "),
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the LLM provider is reachable",
	RunE:  runSettingsCheck,
}

func init() {
	settingsCmd.PersistentFlags().BoolVar(&settingsJSON, "json", false, "output settings as JSON")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingKind is how a config value is parsed from the command line.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindList
)

var settingKinds = map[string]settingKind{
	services.KeyServerPort:        kindInt,
	services.KeyAllowedOrigins:    kindList,
	services.KeyDatasetPath:       kindString,
	services.KeyDatasetFormat:     kindString,
	services.KeyDatasetMatchField: kindString,
	services.KeyDatasetListPath:   kindString,
	services.KeyDatasetMaxMatches: kindInt,
	services.KeyLLMProvider:       kindString,
	services.KeyLLMModel:          kindString,
	services.KeyLLMAPIKey:         kindString,
	services.KeyLLMBaseURL:        kindString,
	services.KeyLLMOutputFormat:   kindString,
	services.KeyLLMTimeoutSeconds: kindInt,
	services.KeyLLMRequestsPerSec: kindFloat,
	services.KeyLLMBurst:          kindInt,
	services.KeyLLMPostProcessors: kindList,
}

func settingKeys() []string {
	return []string{
		services.KeyServerPort,
		services.KeyAllowedOrigins,
		services.KeyDatasetPath,
		services.KeyDatasetFormat,
		services.KeyDatasetMatchField,
		services.KeyDatasetListPath,
		services.KeyDatasetMaxMatches,
		services.KeyLLMProvider,
		services.KeyLLMModel,
		services.KeyLLMAPIKey,
		services.KeyLLMBaseURL,
		services.KeyLLMOutputFormat,
		services.KeyLLMTimeoutSeconds,
		services.KeyLLMRequestsPerSec,
		services.KeyLLMBurst,
		services.KeyLLMPostProcessors,
	}
}

// parseSettingValue converts raw to the type stored for key.
func parseSettingValue(key, raw string) (any, error) {
	kind, ok := settingKinds[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	raw = strings.TrimSpace(raw)
	switch kind {
	case kindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		return v, nil
	case kindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		return v, nil
	case kindList:
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items, nil
	default:
		return raw, nil
	}
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if app == nil || app.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := app.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.LLM.APIKey != "" {
		settings.LLM.APIKey = maskAPIKey(settings.LLM.APIKey)
	}

	if settingsJSON {
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(headingStyle.Render("Current Settings"))
	cmd.Println(mutedStyle.Render(app.Settings.ConfigPath()))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Port: %d\n", settings.Server.Port)
	cmd.Printf("  Allowed origins: %s\n", strings.Join(settings.Server.AllowedOrigins, ", "))
	cmd.Println()

	cmd.Println("[Dataset]")
	cmd.Printf("  Path: %s\n", settings.Dataset.Path)
	cmd.Printf("  Format: %s\n", settings.Dataset.Format.Description())
	cmd.Printf("  Match field: %s\n", settings.Dataset.MatchField)
	if settings.Dataset.Format == domain.DatasetFormatDocument {
		cmd.Printf("  List path: %s\n", settings.Dataset.ListPath)
	}
	cmd.Printf("  Max matches: %d\n", settings.Dataset.MaxMatches)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	if settings.LLM.Model != "" {
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
	}
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", settings.LLM.APIKey)
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Output format: %s\n", settings.LLM.OutputFormat)
	if len(settings.LLM.PostProcessors) > 0 {
		cmd.Printf("  Post-processors: %s\n", strings.Join(settings.LLM.PostProcessors, ", "))
	}
	if settings.LLM.RequestsPerSecond > 0 {
		cmd.Printf("  Rate limit: %.2f/s (burst %d)\n", settings.LLM.RequestsPerSecond, settings.LLM.Burst)
	}

	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = warnStyle.Render("not configured (foraging recommendations will use the fallback text)")
	}
	cmd.Printf("  Status: %s\n", status)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if app == nil || app.Settings == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var raw string
	switch {
	case len(args) == 2:
		raw = args[1]
	case key == services.KeyLLMAPIKey:
		cmd.Print("Enter API key: ")
		raw = readPassword()
		cmd.Println()
		if raw == "" {
			return errors.New("API key is required")
		}
	default:
		return fmt.Errorf("a value is required for %s", key)
	}

	value, err := parseSettingValue(key, raw)
	if err != nil {
		return err
	}
	if err := app.Settings.Set(key, value); err != nil {
		return err
	}

	if key == services.KeyLLMAPIKey {
		cmd.Printf("Set %s\n", key)
	} else {
		cmd.Printf("Set %s = %v\n", key, value)
	}
	return nil
}

func runSettingsCheck(cmd *cobra.Command, _ []string) error {
	if app == nil || app.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := app.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: %s needs an API key", domain.ErrLLMUnavailable, settings.LLM.Provider)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	cmd.Printf("Checking %s... ", settings.LLM.Provider.Description())
	if err := ai.ValidateLLMConfig(ctx, &settings.LLM); err != nil {
		cmd.Println("FAILED")
		return err
	}
	cmd.Println("OK")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
