package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gdlkit/pkg/gdl"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // graphs, headings
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings, back edges
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands, edges
	colorWhite  = lipgloss.Color("255") // values, nodes
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for headings and root graphs.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for the document title in status lines.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for paths, IDs and titles.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh       = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// Entity keywords in tree output.
var (
	styleGraphKeyword    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNodeKeyword     = lipgloss.NewStyle().Foreground(colorGray)
	styleEdgeKeyword     = lipgloss.NewStyle().Foreground(colorBlue)
	styleBackEdgeKeyword = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Lines
// =============================================================================

type statusKind int

const (
	statusSuccess statusKind = iota
	statusError
	statusWarning
	statusInfo
)

// statusMarks holds the icon and styles of each status kind. A zero text
// style leaves the message unstyled.
var statusMarks = [...]struct {
	icon      string
	iconStyle lipgloss.Style
	textStyle lipgloss.Style
}{
	statusSuccess: {iconSuccess, lipgloss.NewStyle().Foreground(colorGreen), lipgloss.NewStyle()},
	statusError:   {iconError, lipgloss.NewStyle().Foreground(colorRed), lipgloss.NewStyle()},
	statusWarning: {iconWarning, lipgloss.NewStyle().Foreground(colorYellow), lipgloss.NewStyle().Foreground(colorYellow)},
	statusInfo:    {iconInfo, lipgloss.NewStyle().Foreground(colorGray), lipgloss.NewStyle()},
}

func printStatus(w io.Writer, kind statusKind, format string, args ...any) {
	m := statusMarks[kind]
	fmt.Fprintln(w, m.iconStyle.Render(m.icon)+" "+m.textStyle.Render(fmt.Sprintf(format, args...)))
}

func printSuccess(w io.Writer, format string, args ...any) {
	printStatus(w, statusSuccess, format, args...)
}

func printError(w io.Writer, format string, args ...any) {
	printStatus(w, statusError, format, args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	printStatus(w, statusWarning, format, args...)
}

func printInfo(w io.Writer, format string, args ...any) {
	printStatus(w, statusInfo, format, args...)
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints "  → path" for a written file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the size of a document and where it came from:
//
//	2 graphs · 2 nodes · 1 edge · cached
func printStats(w io.Writer, graphs, nodes, edges int, cached bool) {
	origin := styleFresh.Render(iconFresh)
	if cached {
		origin = styleCached.Render(iconCached)
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(w, "  "+strings.Join([]string{
		StyleDim.Render(plural(graphs, "graph")),
		StyleDim.Render(plural(nodes, "node")),
		StyleDim.Render(plural(edges, "edge")),
		origin,
	}, sep))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// printNextStep prints a suggested follow-up command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Entity Labels
// =============================================================================

// edgeKeyword renders the GDL keyword of an edge kind. Back edges stand out
// since they run against the layout direction.
func edgeKeyword(k gdl.EdgeKind) string {
	if k == gdl.KindBackEdge {
		return styleBackEdgeKeyword.Render(k.String())
	}
	return styleEdgeKeyword.Render(k.String())
}
