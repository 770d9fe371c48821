package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/youfyi/kitctl/internal/core/services"
	"github.com/youfyi/kitctl/pkg/ui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive workspace browser",
	Long: `Browse assets and kits interactively, check assets and add them to
the selected kit.

Navigation:
- k / ↑   : Move Up
- j / ↓   : Move Down
- tab     : Switch between assets and kits
- space   : Toggle the asset under the cursor
- a / n   : Check all / none
- enter   : Select the kit under the cursor
- A       : Add checked assets to the selected kit
- r       : Refresh from the server
- q       : Quit`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if err := loadWorkspaceState(ctx); err != nil {
		return err
	}

	p := tea.NewProgram(newBrowseModel())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// --- TUI Model ---

const (
	paneAssets = iota
	paneKits
)

type browseModel struct {
	pane      int
	assetRows []services.AssetRow
	kitRows   []services.KitRow
	cursor    int
	status    string
	statusErr bool
	busy      bool
	spin      spinner.Model
}

type refreshDoneMsg struct{ err error }
type addDoneMsg struct {
	added int
	err   error
}

func newBrowseModel() browseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.StyleAccent

	m := browseModel{spin: sp}
	m.rebuildRows()
	return m
}

// rebuildRows re-derives the render rows from the session. Called after
// every refresh or selection change so the screen always mirrors the
// session state.
func (m *browseModel) rebuildRows() {
	m.assetRows = services.BuildAssetRows(appSession)
	m.kitRows = services.BuildKitRows(appSession)
	if m.cursor >= m.paneLen() {
		m.cursor = 0
	}
}

func (m browseModel) paneLen() int {
	if m.pane == paneKits {
		return len(m.kitRows)
	}
	return len(m.assetRows)
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: refresher.RefreshAll(getContext())}
	}
}

func addSelectedCmd() tea.Cmd {
	return func() tea.Msg {
		added, err := kitService.AddSelected(getContext())
		return addDoneMsg{added: added, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case refreshDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
			if msg.err == services.ErrWorkspaceGone {
				return m, tea.Quit
			}
		} else {
			m.status = "refreshed"
			m.statusErr = false
		}
		m.rebuildRows()
		return m, nil

	case addDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
		} else {
			m.status = fmt.Sprintf("added %d assets to the kit", msg.added)
			m.statusErr = false
		}
		m.rebuildRows()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < m.paneLen()-1 {
				m.cursor++
			}

		case "tab":
			if m.pane == paneAssets {
				m.pane = paneKits
			} else {
				m.pane = paneAssets
			}
			m.cursor = 0

		case " ":
			if m.pane == paneAssets && m.cursor < len(m.assetRows) {
				appSession.Selection().Toggle(m.assetRows[m.cursor].ID)
				m.rebuildRows()
			}

		case "a":
			if m.pane == paneAssets {
				ids := make([]string, 0, len(m.assetRows))
				for _, r := range m.assetRows {
					ids = append(ids, r.ID)
				}
				appSession.Selection().SetAll(ids, true)
				m.rebuildRows()
			}

		case "n":
			if m.pane == paneAssets {
				appSession.Selection().Clear()
				m.rebuildRows()
			}

		case "enter":
			if m.pane == paneKits && m.cursor < len(m.kitRows) {
				if err := kitService.Select(m.kitRows[m.cursor].ID); err != nil {
					m.status = err.Error()
					m.statusErr = true
				} else {
					m.status = "selected kit " + m.kitRows[m.cursor].Name
					m.statusErr = false
				}
				m.rebuildRows()
			}

		case "A":
			m.status = "adding..."
			m.statusErr = false
			m.busy = true
			return m, tea.Batch(addSelectedCmd(), m.spin.Tick)

		case "r":
			m.status = "refreshing..."
			m.statusErr = false
			m.busy = true
			return m, tea.Batch(refreshCmd(), m.spin.Tick)
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var s strings.Builder

	s.WriteString("\n")
	s.WriteString(ui.StyleTitle.Render(" Workspace Browser"))
	s.WriteString("\n\n")

	if m.pane == paneAssets {
		s.WriteString(ui.StyleHeader.Render(" Assets") + ui.StyleMuted.Render("  |  kits (tab)"))
	} else {
		s.WriteString(ui.StyleMuted.Render(" assets (tab)  |  ") + ui.StyleHeader.Render("Kits"))
	}
	s.WriteString("\n\n")

	if m.pane == paneAssets {
		m.viewAssets(&s)
	} else {
		m.viewKits(&s)
	}

	s.WriteString("\n")
	if m.status != "" {
		if m.busy {
			s.WriteString(" " + m.spin.View() + ui.StyleMuted.Render(m.status))
		} else if m.statusErr {
			s.WriteString(" " + ui.StyleError.Render(m.status))
		} else {
			s.WriteString(" " + ui.StyleMuted.Render(m.status))
		}
		s.WriteString("\n")
	}

	checked := appSession.Selection().Count()
	kitName := "none"
	if kit, ok := appSession.SelectedKit(); ok {
		kitName = kit.Name
	}
	s.WriteString(ui.StyleMuted.Render(fmt.Sprintf(" checked: %d  kit: %s", checked, kitName)))
	s.WriteString("\n\n")
	s.WriteString(ui.StyleMuted.Render(" [space] Check  [a/n] All/None  [enter] Select Kit  [A] Add  [r] Refresh  [q] Quit"))
	s.WriteString("\n")

	return s.String()
}

func (m browseModel) viewAssets(s *strings.Builder) {
	if len(m.assetRows) == 0 {
		s.WriteString(ui.StyleMuted.Render("  (no assets)"))
		s.WriteString("\n")
		return
	}

	for i, row := range m.assetRows {
		cursor := "  "
		style := ui.StyleMuted
		if m.pane == paneAssets && m.cursor == i {
			cursor = ui.StyleAccent.Render("→ ")
			style = ui.StyleBold
		}

		check := "[ ]"
		if row.Checked {
			check = ui.StyleSuccess.Render("[x]")
		}

		s.WriteString(fmt.Sprintf("%s%s %s %s\n",
			cursor,
			check,
			style.Render(row.Icon+" "+row.Name),
			ui.StyleMuted.Render(row.Size),
		))
	}
}

func (m browseModel) viewKits(s *strings.Builder) {
	if len(m.kitRows) == 0 {
		s.WriteString(ui.StyleMuted.Render("  (no kits)"))
		s.WriteString("\n")
		return
	}

	for i, row := range m.kitRows {
		cursor := "  "
		style := ui.StyleMuted
		if m.pane == paneKits && m.cursor == i {
			cursor = ui.StyleAccent.Render("→ ")
			style = ui.StyleBold
		}

		marker := "  "
		if row.Selected {
			marker = ui.StyleSuccess.Render("* ")
		}

		s.WriteString(fmt.Sprintf("%s%s%s %s\n",
			cursor,
			marker,
			style.Render(ui.IconKit+" "+row.Name),
			ui.StyleMuted.Render(fmt.Sprintf("(%d assets)", row.AssetCount)),
		))
	}
}
