package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/mailblocks/internal/adapters/driven/parser/xmltree"
	"github.com/custodia-labs/mailblocks/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mailblocks/internal/converter"
	"github.com/custodia-labs/mailblocks/internal/core/services"
	"github.com/custodia-labs/mailblocks/internal/preprocessors"
)

const (
	validMarkup  = `<mjml><mj-body><mj-section><mj-column><mj-text>Hi</mj-text></mj-column></mj-section></mj-body></mjml>`
	brokenMarkup = `<mjml><mj-body></mjml>`
	repairMarkup = `<mjml><mj-body><mj-section><mj-column><mj-text>A &nbsp; B</mj-text></mj-column></mj-section></mj-body></mjml>`
)

// setupTestServices installs the real pipeline over in-memory stores and
// removes it when the test ends.
func setupTestServices(t *testing.T) *Services {
	t.Helper()

	importer := services.NewImportService(preprocessors.DefaultPipeline(), xmltree.New(), converter.New())
	svc := &Services{
		Import:    importer,
		Templates: services.NewTemplateService(importer, memory.NewTemplateStore()),
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
	}
	SetServices(svc)
	t.Cleanup(func() {
		SetServices(&Services{})
	})
	return svc
}

// execute runs the root command with args and stdin, returning what was
// written to stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag in the tree to its default, since cobra
// keeps parsed values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
