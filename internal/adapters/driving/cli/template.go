package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04:05"

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage stored templates",
	Long:  `List, view, or delete templates saved with import --save.`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show [template-id]",
	Short: "Print a stored template's block tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete [template-id]",
	Short: "Delete a stored template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

func init() {
	templateShowCmd.Flags().StringP("format", "f", "", "output format: auto, json or tree")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	templates, err := requireTemplates()
	if err != nil {
		return err
	}

	list, err := templates.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	if len(list) == 0 {
		cmd.Println("No templates stored. Use 'mailblocks import --save' to add one.")
		return nil
	}

	cmd.Println("Templates:")
	cmd.Println()
	for i := range list {
		cmd.Printf("  %s\n", list[i].ID)
		cmd.Printf("    Name:    %s\n", list[i].Name)
		if list[i].SourcePath != "" {
			cmd.Printf("    Source:  %s\n", list[i].SourcePath)
		}
		cmd.Printf("    Blocks:  %d\n", list[i].BlockCount)
		cmd.Printf("    Updated: %s\n", list[i].UpdatedAt.Format(timeLayout))
		cmd.Println()
	}

	cmd.Printf("Total: %d templates\n", len(list))
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	templates, err := requireTemplates()
	if err != nil {
		return err
	}

	flagFormat, _ := cmd.Flags().GetString("format")
	settings := currentSettings()
	format, err := resolveFormat(flagFormat, settings.Output.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	tmpl, err := templates.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	return renderBlock(cmd.OutOrStdout(), tmpl.Root, format, settings)
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	templates, err := requireTemplates()
	if err != nil {
		return err
	}

	if err := templates.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	cmd.Printf("Deleted template %s\n", args[0])
	return nil
}
