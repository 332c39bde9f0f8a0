package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure output, storage, import and MCP settings.

Use subcommands to change a single key or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a single setting",
	Long: `Change a single setting by its dot-notation key.

Keys:
  import.max_input_bytes  largest accepted input in bytes (0 = unbounded)
  output.format           auto, json or tree
  output.indent           JSON indent width (0-8)
  output.color            true or false
  storage.backend         sqlite or memory
  storage.data_dir        directory for the template database
  mcp.rate_limit          MCP imports per second`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure output and storage step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
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

	cmd.Println("[Import]")
	cmd.Printf("  Max input: %s\n", formatBytes(settings.Import.MaxInputBytes))
	cmd.Println()

	cmd.Println("[Output]")
	cmd.Printf("  Format: %s\n", settings.Output.Format.Description())
	cmd.Printf("  Indent: %d\n", settings.Output.Indent)
	cmd.Printf("  Color: %t\n", settings.Output.Color)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	} else {
		cmd.Println("  Data dir: (default)")
	}
	cmd.Println()

	cmd.Println("[MCP]")
	cmd.Printf("  Rate limit: %d/s\n", settings.MCP.RateLimit)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("mailblocks Setup Wizard")
	cmd.Println("=======================")
	cmd.Println()

	formats := []domain.OutputFormat{domain.OutputFormatAuto, domain.OutputFormatJSON, domain.OutputFormatTree}
	cmd.Println("Output format:")
	current := 1
	for i, f := range formats {
		cmd.Printf("  %d. %s\n", i+1, f.Description())
		if f == settings.Output.Format {
			current = i + 1
		}
	}
	cmd.Printf("Select [%d]: ", current)
	settings.Output.Format = formats[parseChoice(readLine(reader), len(formats), current)-1]
	cmd.Println()

	backends := []domain.StorageBackend{domain.StorageSQLite, domain.StorageMemory}
	cmd.Println("Template storage:")
	current = 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b)
		if b == settings.Storage.Backend {
			current = i + 1
		}
	}
	cmd.Printf("Select [%d]: ", current)
	settings.Storage.Backend = backends[parseChoice(readLine(reader), len(backends), current)-1]
	cmd.Println()

	if settings.Storage.Backend == domain.StorageSQLite {
		shown := settings.Storage.DataDir
		if shown == "" {
			shown = "default"
		}
		cmd.Printf("Data directory [%s]: ", shown)
		if dir := readLine(reader); dir != "" {
			settings.Storage.DataDir = dir
		}
		cmd.Println()
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings saved.")
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// formatBytes renders a byte limit for display.
func formatBytes(n int) string {
	switch {
	case n <= 0:
		return "unbounded"
	case n%(1<<20) == 0:
		return fmt.Sprintf("%d MiB", n>>20)
	case n%(1<<10) == 0:
		return fmt.Sprintf("%d KiB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
