package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
)

// stdinArg selects standard input in place of a file.
const stdinArg = "-"

// currentSettings returns the configured settings, or the defaults when
// no settings service is available.
func currentSettings() domain.Settings {
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			return *settings
		}
	}
	return domain.DefaultSettings()
}

// readMarkup reads markup from the file named in args, or from stdin
// when args is empty or "-". It returns the markup and its source path
// ("" for stdin).
func readMarkup(cmd *cobra.Command, args []string) (string, string, error) {
	limit := currentSettings().Import.MaxInputBytes

	if len(args) == 0 || args[0] == stdinArg {
		markup, err := readLimited(cmd.InOrStdin(), limit)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return markup, "", nil
	}

	path := args[0]
	markup, err := readFileLimited(path, limit)
	if err != nil {
		return "", "", err
	}
	return markup, path, nil
}

// readFileLimited reads at most limit bytes from path.
func readFileLimited(path string, limit int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	markup, err := readLimited(f, limit)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return markup, nil
}

// readLimited reads r fully, failing with ErrInputTooLarge past limit
// bytes. A limit of zero or less reads everything.
func readLimited(r io.Reader, limit int) (string, error) {
	if limit <= 0 {
		data, err := io.ReadAll(r)
		return string(data), err
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return "", err
	}
	if len(data) > limit {
		return "", fmt.Errorf("%w: more than %d bytes", domain.ErrInputTooLarge, limit)
	}
	return string(data), nil
}
