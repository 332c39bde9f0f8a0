package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"golang.org/x/term"

	"github.com/custodia-labs/mailblocks/internal/core/domain"
)

// previewLength is the number of runes of content shown in tree labels.
const previewLength = 48

// palette is the colour scheme for tree output.
var palette = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
}{
	Primary:   lipgloss.Color("#7C3AED"), // Purple
	Secondary: lipgloss.Color("#06B6D4"), // Cyan
	Muted:     lipgloss.Color("#6C7086"), // Medium gray
	Success:   lipgloss.Color("#A6E3A1"), // Green
}

// treeStyles holds the styles used to draw a block tree.
type treeStyles struct {
	Root       lipgloss.Style
	Type       lipgloss.Style
	Attribute  lipgloss.Style
	Content    lipgloss.Style
	Enumerator lipgloss.Style
}

func newTreeStyles(color bool) treeStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return treeStyles{
			Root:       plain,
			Type:       plain,
			Attribute:  plain,
			Content:    plain,
			Enumerator: plain.PaddingRight(1),
		}
	}
	return treeStyles{
		Root:       lipgloss.NewStyle().Bold(true).Foreground(palette.Primary),
		Type:       lipgloss.NewStyle().Foreground(palette.Secondary),
		Attribute:  lipgloss.NewStyle().Foreground(palette.Muted),
		Content:    lipgloss.NewStyle().Foreground(palette.Success),
		Enumerator: lipgloss.NewStyle().Foreground(palette.Muted).PaddingRight(1),
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// resolveFormat picks the output format: an explicit flag wins, then the
// configured format; auto means a tree on a terminal and JSON otherwise.
func resolveFormat(flag string, configured domain.OutputFormat, w io.Writer) (domain.OutputFormat, error) {
	format := configured
	if flag != "" {
		format = domain.OutputFormat(strings.ToLower(flag))
		if !format.IsValid() {
			return "", fmt.Errorf("%w: unknown format %q (want auto, json or tree)", domain.ErrInvalidInput, flag)
		}
	}
	if format == domain.OutputFormatAuto {
		if isTerminal(w) {
			return domain.OutputFormatTree, nil
		}
		return domain.OutputFormatJSON, nil
	}
	return format, nil
}

// renderBlock writes root to w in the given format.
func renderBlock(w io.Writer, root *domain.Block, format domain.OutputFormat, settings domain.Settings) error {
	switch format {
	case domain.OutputFormatTree:
		color := settings.Output.Color && isTerminal(w)
		_, err := fmt.Fprintln(w, blockTree(root, newTreeStyles(color)).String())
		return err
	default:
		return writeJSON(w, root, settings.Output.Indent)
	}
}

// writeJSON encodes v with indent spaces per level; zero gives compact output.
func writeJSON(w io.Writer, v any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// blockTree builds a lipgloss tree mirroring the block tree.
func blockTree(root *domain.Block, styles treeStyles) *tree.Tree {
	t := tree.Root(styles.Root.Render(root.Type) + blockDetails(root, styles)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styles.Enumerator)
	for _, child := range root.Children {
		t.Child(childTree(child, styles))
	}
	return t
}

func childTree(b *domain.Block, styles treeStyles) any {
	label := styles.Type.Render(b.Type) + blockDetails(b, styles)
	if len(b.Children) == 0 {
		return label
	}
	t := tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styles.Enumerator)
	for _, child := range b.Children {
		t.Child(childTree(child, styles))
	}
	return t
}

// blockDetails formats attributes and a content preview for a label.
func blockDetails(b *domain.Block, styles treeStyles) string {
	var sb strings.Builder
	if b.Attributes.Len() > 0 {
		pairs := make([]string, 0, b.Attributes.Len())
		for _, attr := range b.Attributes {
			pairs = append(pairs, attr.Name+"="+attr.Value)
		}
		sb.WriteString(" ")
		sb.WriteString(styles.Attribute.Render("[" + strings.Join(pairs, " ") + "]"))
	}
	if b.HasContent() {
		sb.WriteString(" ")
		sb.WriteString(styles.Content.Render(fmt.Sprintf("%q", preview(b.Content))))
	}
	return sb.String()
}

// preview collapses whitespace and truncates s for display.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= previewLength {
		return s
	}
	return string(runes[:previewLength-1]) + "…"
}

// typeHistogram counts blocks per type, sorted by type name.
func typeHistogram(root *domain.Block) []string {
	counts := make(map[string]int)
	root.Walk(func(b *domain.Block, _ int) bool {
		counts[b.Type]++
		return true
	})
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	lines := make([]string, len(types))
	for i, t := range types {
		lines[i] = fmt.Sprintf("%s=%d", t, counts[t])
	}
	return lines
}

// summaryLine describes an import in one line.
func summaryLine(result *domain.ImportResult) string {
	repaired := ""
	if result.Repaired {
		repaired = ", repaired"
	}
	return fmt.Sprintf("%d blocks, depth %d%s (%s)",
		result.BlockCount, result.Depth, repaired, strings.Join(typeHistogram(result.Root), " "))
}
