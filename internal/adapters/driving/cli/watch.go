package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
	"github.com/custodia-labs/mailblocks/internal/core/ports/driving"
	"github.com/custodia-labs/mailblocks/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-import a file every time it changes",
	Long: `Watch a markup file and re-import it on every write, printing one
summary line per import.

A failed import reports the error and keeps the previous result. With
--save the file is stored as a single template that is replaced on each
successful import.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("save", false, "store each successful import as a template")
	watchCmd.Flags().String("name", "", "template name when saving (default: file name)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	importer, err := requireImport()
	if err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	name, _ := cmd.Flags().GetString("name")

	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	w := &fileWatcher{
		path:     path,
		name:     name,
		limit:    currentSettings().Import.MaxInputBytes,
		importer: importer,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
		now:      time.Now,
	}
	if save {
		if w.templates, err = requireTemplates(); err != nil {
			return err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	cmd.PrintErrf("Watching %s (Ctrl+C to stop)\n", path)
	return w.run(cmd.Context(), watcher.Events, watcher.Errors)
}

// fileWatcher re-imports one file in response to filesystem events and
// remembers the last successful result.
type fileWatcher struct {
	path  string
	name  string
	limit int

	importer  driving.ImportService
	templates driving.TemplateService

	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	last       *domain.ImportResult
	templateID string
}

// run imports the file once, then again for every write or create event
// on it, until ctx is cancelled or the event channel closes.
func (w *fileWatcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	w.reimport(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				logger.Debug("watch: %s %s", event.Op, event.Name)
				w.reimport(ctx)
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.errOut, "watch error: %v\n", err)
		}
	}
}

// reimport reads and imports the file. On failure the previous result is
// kept and the error is reported.
func (w *fileWatcher) reimport(ctx context.Context) {
	stamp := w.now().Format("15:04:05")

	markup, err := readFileLimited(w.path, w.limit)
	if err != nil {
		fmt.Fprintf(w.errOut, "%s %v (keeping previous result)\n", stamp, err)
		return
	}

	var result *domain.ImportResult
	if w.templates != nil {
		var tmpl *domain.Template
		result, tmpl, err = saveImport(ctx, w.importer, w.templates, driving.ImportRequest{
			ID:         w.templateID,
			Name:       w.name,
			SourcePath: w.path,
			Markup:     markup,
		})
		if err == nil {
			w.templateID = tmpl.ID
		}
	} else {
		result, err = w.importer.Import(ctx, markup)
	}
	if err != nil {
		fmt.Fprintf(w.errOut, "%s import failed: %v (keeping previous result)\n", stamp, err)
		return
	}

	w.last = result
	fmt.Fprintf(w.out, "%s %s\n", stamp, summaryLine(result))
}
