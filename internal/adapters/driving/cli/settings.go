package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the annotator, the tagging policy and the
classifier type table.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting and save it to the configuration file.

Examples:
  namedrop settings set annotator.confidence 0.5
  namedrop settings set policy.mode nesting
  namedrop settings set classifier.types.DBpedia:Writer persName`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Annotator]")
	cmd.Printf("  Endpoint: %s\n", settings.Annotator.Endpoint)
	cmd.Printf("  Confidence: %g\n", settings.Annotator.Confidence)
	cmd.Printf("  Support: %d\n", settings.Annotator.Support)
	if settings.Rate > 0 {
		cmd.Printf("  Rate: %g requests/s\n", settings.Rate)
	} else {
		cmd.Printf("  Rate: unlimited\n")
	}
	if settings.Gazetteer != "" {
		cmd.Printf("  Gazetteer: %s\n", settings.Gazetteer)
	} else {
		cmd.Printf("  Gazetteer: (default)\n")
	}
	cmd.Println()

	cmd.Println("[Policy]")
	cmd.Printf("  Mode: %s\n", settings.Policy.Description())
	cmd.Println()

	cmd.Println("[Types]")
	typeNames := make([]string, 0, len(settings.Types))
	for typeName := range settings.Types {
		typeNames = append(typeNames, typeName)
	}
	sort.Strings(typeNames)
	for _, typeName := range typeNames {
		cmd.Printf("  %s -> %s\n", typeName, settings.Types[typeName])
	}
	cmd.Println()

	if err := settings.Annotator.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'namedrop settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}
