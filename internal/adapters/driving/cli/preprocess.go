package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess [file|-]",
	Short: "Print markup after the repair passes",
	Long: `Apply the markup repairs without parsing and print the result.

The repairs close void elements, turn legacy named entities into numeric
references, escape bare ampersands in attribute values and resolve
duplicate attributes. Running preprocess on its own output changes nothing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreprocess,
}

func init() {
	preprocessCmd.Flags().Bool("check", false, "exit with an error if the markup needs repairs")
	rootCmd.AddCommand(preprocessCmd)
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	importer, err := requireImport()
	if err != nil {
		return err
	}

	markup, _, err := readMarkup(cmd, args)
	if err != nil {
		return err
	}

	repaired := importer.Preprocess(markup)

	check, _ := cmd.Flags().GetBool("check")
	if check {
		if repaired != markup {
			return fmt.Errorf("markup needs repairs (%d -> %d bytes)", len(markup), len(repaired))
		}
		cmd.Println("Markup is already canonical.")
		return nil
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), repaired)
	return err
}
