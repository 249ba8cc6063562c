package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gdlkit/pkg/gdl"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// =============================================================================
// Entries
// =============================================================================

type entryKind int

const (
	entryGraph entryKind = iota
	entryNode
	entryEdge
)

// browserEntry is one visible line of the tree.
type browserEntry struct {
	kind  entryKind
	depth int
	graph *gdl.Graph
	node  *gdl.Node
	edge  *gdl.Edge
}

func (e browserEntry) label() string {
	switch e.kind {
	case entryGraph:
		return graphLabel(e.graph)
	case entryNode:
		return nodeLabel(e.node)
	default:
		return edgeLabel(e.edge)
	}
}

// text returns the GDL the entry is written as.
func (e browserEntry) text() string {
	var b strings.Builder
	switch e.kind {
	case entryGraph:
		_, _ = e.graph.WriteTo(&b)
	case entryNode:
		_, _ = e.node.WriteTo(&b)
	default:
		_, _ = e.edge.WriteTo(&b)
	}
	return b.String()
}

// details returns the key facts about the entry as table rows.
func (e browserEntry) details() [][]string {
	switch e.kind {
	case entryGraph:
		g := e.graph
		return [][]string{
			{"title", g.Title()},
			{"label", g.Label()},
			{"nodes", strconv.Itoa(len(g.Nodes()))},
			{"edges", strconv.Itoa(len(g.Edges()))},
			{"subgraphs", strconv.Itoa(len(g.Subgraphs()))},
		}
	case entryNode:
		n := e.node
		rows := [][]string{{"title", n.Title()}, {"label", n.Label()}}
		if p := n.Parent(); p != nil {
			rows = append(rows, []string{"graph", p.Title()})
		}
		return rows
	default:
		ed := e.edge
		return [][]string{
			{"kind", ed.Kind().String()},
			{"source", ed.SourceName()},
			{"target", ed.TargetName()},
			{"label", ed.Label()},
		}
	}
}

// =============================================================================
// browserModel - Interactive graph tree browser
// =============================================================================

// browserModel is the bubbletea model for "inspect --interactive".
type browserModel struct {
	root      *gdl.Graph
	collapsed map[*gdl.Graph]bool
	entries   []browserEntry
	cursor    int
	offset    int
	height    int
	width     int
}

func newBrowserModel(root *gdl.Graph) browserModel {
	m := browserModel{
		root:      root,
		collapsed: make(map[*gdl.Graph]bool),
		height:    20,
		width:     100,
	}
	m.entries = m.flatten()
	return m
}

// flatten lists the visible entries in document order. The children of a
// collapsed graph are hidden.
func (m browserModel) flatten() []browserEntry {
	var out []browserEntry
	var walk func(g *gdl.Graph, depth int)
	walk = func(g *gdl.Graph, depth int) {
		out = append(out, browserEntry{kind: entryGraph, depth: depth, graph: g})
		if m.collapsed[g] {
			return
		}
		for _, n := range g.Nodes() {
			out = append(out, browserEntry{kind: entryNode, depth: depth + 1, node: n})
		}
		for _, sub := range g.Subgraphs() {
			walk(sub, depth+1)
		}
		for _, e := range g.Edges() {
			out = append(out, browserEntry{kind: entryEdge, depth: depth + 1, edge: e})
		}
	}
	walk(m.root, 0)
	return out
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.entries) - 1
		case "enter", " ":
			if e := m.entries[m.cursor]; e.kind == entryGraph {
				m.collapsed[e.graph] = !m.collapsed[e.graph]
				m.entries = m.flatten()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m browserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Graph " + m.root.Title()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ fold graph  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.entries))
	var list strings.Builder
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		fold := ""
		if e.kind == entryGraph {
			fold = "▾ "
			if m.collapsed[e.graph] {
				fold = "▸ "
			}
		}
		line := cursor + strings.Repeat("  ", e.depth) + fold + e.label()
		if i == m.cursor {
			list.WriteString(listSelectedStyle.Render(line))
		} else {
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	listWidth := m.width / 2
	left := lipgloss.NewStyle().Width(listWidth).Render(list.String())
	right := m.detailView(m.width - listWidth - 4)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))

	return b.String()
}

// detailView shows the selected entry's facts and its GDL text, cut to the
// panel height.
func (m browserModel) detailView(width int) string {
	if len(m.entries) == 0 {
		return ""
	}
	e := m.entries[m.cursor]

	headerStyle := lipgloss.NewStyle().Foreground(colorGray)
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Rows(e.details()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	lines := strings.Split(strings.TrimRight(e.text(), "\n"), "\n")
	if limit := m.height - len(e.details()) - 4; limit > 0 && len(lines) > limit {
		lines = append(lines[:limit], "…")
	}
	body := t.Render() + "\n" + listDimStyle.Render(strings.Join(lines, "\n"))
	if width > 0 {
		return panelStyle.Width(width).Render(body)
	}
	return panelStyle.Render(body)
}
