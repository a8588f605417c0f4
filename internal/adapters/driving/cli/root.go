// Package cli provides the cobra command tree for namedrop.
package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/namedrop/internal/core/ports/driving"
	"github.com/custodia-labs/namedrop/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// ConfigWatcher reports changes to the configuration file.
type ConfigWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Services holds the driving ports used by the commands.
type Services struct {
	Annotation driving.AnnotationService
	Span       driving.SpanService
	Settings   driving.SettingsService

	// ConfigWatcher is optional. When set, long-running commands pick up
	// configuration changes.
	ConfigWatcher ConfigWatcher
}

var (
	annotationService driving.AnnotationService
	spanService       driving.SpanService
	settingsService   driving.SettingsService
	configWatcher     ConfigWatcher
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "namedrop",
	Short: "Find named entities in marked-up text",
	Long: `namedrop annotates a selection of a marked-up document with named
entities, maps each match back to its exact position in the original text
and filters out candidates that clash with regions already tagged.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline diagnostics to stderr")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	annotationService = s.Annotation
	spanService = s.Span
	settingsService = s.Settings
	configWatcher = s.ConfigWatcher
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// resolveDocumentID maps a file path argument to the document ID used
// by file selections. Other arguments are returned unchanged.
func resolveDocumentID(arg string) string {
	if _, err := os.Stat(arg); err != nil {
		return arg
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return arg
	}
	return abs
}
