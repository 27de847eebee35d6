package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tagmesh/tagmesh/pkg/taggraph"
)

// List styles
var (
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the tui command for the interactive tag browser.
func (c *CLI) tuiCommand() *cobra.Command {
	var graphFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse tags and their entries interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(graphFile)
			if err != nil {
				return err
			}

			tags := taggraph.AllTags(g)
			if len(tags) == 0 {
				printWarning("No tags to browse")
				return nil
			}

			model := NewTagBrowserModel(g, tags)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&graphFile, "graph", "g", "", "graph JSON file (default: build from current directory)")

	return cmd
}

// =============================================================================
// TagBrowserModel - Interactive tag browsing
// =============================================================================

// tagRow is one tag with its resolved assignments, precomputed so View
// stays cheap.
type tagRow struct {
	Name     string
	Entities []taggraph.Node
}

// TagBrowserModel is the bubbletea model for browsing tags. It has two
// screens: the tag list, and the entry list of the selected tag.
type TagBrowserModel struct {
	Tags     []tagRow
	Cursor   int
	Height   int
	Offset   int
	Expanded bool // showing the entries of the tag under the cursor
}

// NewTagBrowserModel creates a browser model over a finished graph.
func NewTagBrowserModel(g *taggraph.Graph, tags []taggraph.Node) TagBrowserModel {
	rows := make([]tagRow, 0, len(tags))
	for _, tag := range tags {
		idx, _ := g.Lookup(tag)
		rows = append(rows, tagRow{Name: tag.Tag, Entities: taggraph.AssignedTo(g, idx)})
	}
	return TagBrowserModel{
		Tags:   rows,
		Height: 15,
	}
}

func (m TagBrowserModel) Init() tea.Cmd {
	return nil
}

func (m TagBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Expanded {
				m.Expanded = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Expanded && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Expanded && m.Cursor < len(m.Tags)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TagBrowserModel) View() string {
	if m.Expanded {
		return m.entriesView()
	}
	return m.listView()
}

// listView renders the tag table.
func (m TagBrowserModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tags"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ entries  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Tags) {
		end = len(m.Tags)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Tags[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		preview := "—"
		if len(r.Entities) > 0 {
			names := make([]string, 0, 3)
			for _, e := range r.Entities {
				names = append(names, e.Label())
				if len(names) == 3 {
					break
				}
			}
			preview = strings.Join(names, ", ")
			if len(r.Entities) > 3 {
				preview += ", …"
			}
		}

		rows = append(rows, []string{cursor, r.Name, fmt.Sprintf("%d", len(r.Entities)), preview})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Tag", "Entries", "Preview").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Tags) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if col != 3 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			if col != 3 {
				return base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Tags))))

	return b.String()
}

// entriesView renders the entry list of the selected tag.
func (m TagBrowserModel) entriesView() string {
	var b strings.Builder
	r := m.Tags[m.Cursor]

	b.WriteString(StyleTitle.Render("[" + r.Name + "]"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	if len(r.Entities) == 0 {
		b.WriteString(listDimStyle.Render("  no entries"))
		b.WriteString("\n")
		return b.String()
	}

	for _, e := range r.Entities {
		kind := listDimStyle.Render(fmt.Sprintf("%-14s", e.Kind.String()))
		b.WriteString("  " + kind + " " + listNormalStyle.Render(e.Path))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d entries", len(r.Entities))))

	return b.String()
}
