// Package cli implements the mailblocks command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
	"github.com/custodia-labs/mailblocks/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Nil until configured.
var (
	importService   driving.ImportService
	templateService driving.TemplateService
	settingsService driving.SettingsService
)

// Services bundles the driving ports the commands depend on.
type Services struct {
	Import    driving.ImportService
	Templates driving.TemplateService
	Settings  driving.SettingsService

	// Close releases resources held by the services. Optional.
	Close func() error
}

// ServiceFactory builds the services once flags are parsed.
type ServiceFactory func(configDir string) (*Services, error)

var (
	serviceFactory ServiceFactory
	closeServices  func() error
)

var rootCmd = &cobra.Command{
	Use:   "mailblocks",
	Short: "Import MJML email templates into an editable block tree",
	Long: `mailblocks repairs near-miss MJML markup, parses it and converts it into
the typed block tree used by the visual email editor.

Imports can be printed, watched for changes, stored as templates, or
served to AI assistants over MCP.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: teardownServices,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print pipeline diagnostics to stderr")
	rootCmd.PersistentFlags().String("config-dir", "", "configuration directory (default ~/.mailblocks)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServiceFactory registers the function that wires services.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

// SetServices installs ready-made services.
func SetServices(services *Services) {
	importService = services.Import
	templateService = services.Templates
	settingsService = services.Settings
	closeServices = services.Close
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as watch and mcp serve.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setupServices(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("getting verbose flag: %w", err)
	}
	logger.SetVerbose(verbose)

	if importService != nil || serviceFactory == nil {
		return nil
	}

	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return fmt.Errorf("getting config-dir flag: %w", err)
	}

	services, err := serviceFactory(configDir)
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	SetServices(services)
	return nil
}

func teardownServices(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	closer := closeServices
	closeServices = nil
	return closer()
}

// requireImport returns the import service or an error when unset.
func requireImport() (driving.ImportService, error) {
	if importService == nil {
		return nil, errors.New("import service not configured")
	}
	return importService, nil
}

// requireTemplates returns the template service or an error when unset.
func requireTemplates() (driving.TemplateService, error) {
	if templateService == nil {
		return nil, errors.New("template service not configured")
	}
	return templateService, nil
}
