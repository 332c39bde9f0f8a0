package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
)

var importCmd = &cobra.Command{
	Use:   "import [file|-]",
	Short: "Import markup and print the block tree",
	Long: `Repair, parse and convert MJML markup into a block tree.

Markup is read from the named file, or from stdin when the file is
omitted or "-". The tree is printed as JSON, or as an outline when
--format=tree (the default on a terminal).

Examples:
  mailblocks import newsletter.mjml
  cat newsletter.mjml | mailblocks import --format json
  mailblocks import newsletter.mjml --save --name "March newsletter"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringP("format", "f", "", "output format: auto, json or tree")
	importCmd.Flags().Bool("save", false, "store the result as a template")
	importCmd.Flags().String("name", "", "template name when saving (default: file name)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	importer, err := requireImport()
	if err != nil {
		return err
	}

	flagFormat, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")
	name, _ := cmd.Flags().GetString("name")

	settings := currentSettings()
	format, err := resolveFormat(flagFormat, settings.Output.Format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	markup, sourcePath, err := readMarkup(cmd, args)
	if err != nil {
		return err
	}

	var result *domain.ImportResult
	if save {
		templates, terr := requireTemplates()
		if terr != nil {
			return terr
		}
		var tmpl *domain.Template
		result, tmpl, err = saveImport(cmd.Context(), importer, templates, driving.ImportRequest{
			Name:       name,
			SourcePath: sourcePath,
			Markup:     markup,
		})
		if err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved template %s (%s)\n", tmpl.ID, tmpl.Name)
		}
	} else {
		result, err = importer.Import(cmd.Context(), markup)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if err := renderBlock(cmd.OutOrStdout(), result.Root, format, settings); err != nil {
		return err
	}
	if format == domain.OutputFormatTree {
		cmd.Println(summaryLine(result))
	}
	return nil
}

// saveImport stores markup as a template and returns the statistics the
// plain import would have reported.
func saveImport(
	ctx context.Context,
	importer driving.ImportService,
	templates driving.TemplateService,
	req driving.ImportRequest,
) (*domain.ImportResult, *domain.Template, error) {
	tmpl, err := templates.Import(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	result := &domain.ImportResult{
		Root:       tmpl.Root,
		Repaired:   importer.Preprocess(req.Markup) != req.Markup,
		BlockCount: tmpl.BlockCount,
		Depth:      tmpl.Root.Depth(),
	}
	return result, tmpl, nil
}
