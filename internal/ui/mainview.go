package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dungeonedit/internal/catalog"
)

// Rows taken by the header, catalog tabs and footer.
const mainChromeRows = 6

// handleMainKey processes keyboard input for the main window.
func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	main := m.currentMain()

	switch {
	case key.Matches(msg, m.keys.OpenFile):
		id := main.id
		m.modal = newInputModal("Open Save File", "/path/to/profile.dat", main.docPath, func(path string) tea.Cmd {
			if path == "" {
				return nil
			}
			return openDocumentCmd(id, path)
		})
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if main.requests != nil {
			main.requests.Reload(main.docPath, main.doc)
			m.status = "Reloading window"
		}
		return m, nil

	case key.Matches(msg, m.keys.Relaunch):
		if main.requests != nil {
			main.requests.Relaunch()
			m.status = "Relaunching"
		}
		return m, nil

	case key.Matches(msg, m.keys.NextCatalog):
		if n := len(m.indexes()); n > 0 {
			m.catalogIdx = (m.catalogIdx + 1) % n
		}
		m.refreshList()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.modal = newInputModal("Filter Catalog", "name contains...", m.filter, func(q string) tea.Cmd {
			return func() tea.Msg { return filterMsg(q) }
		})
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.filter != "" {
			m.filter = ""
			m.refreshList()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.list.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.list.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		m.list.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.list.GotoBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.list.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.list.HalfPageDown()
	}
	return m, nil
}

type filterMsg string

func (m Model) indexes() []*catalog.Index {
	if m.catalogs == nil {
		return nil
	}
	return m.catalogs.All()
}

func (m Model) currentIndex() *catalog.Index {
	idx := m.indexes()
	if len(idx) == 0 {
		return nil
	}
	return idx[m.catalogIdx%len(idx)]
}

func (m Model) listHeight() int {
	return maxInt(1, m.height-mainChromeRows)
}

// refreshList rebuilds the catalog viewport content.
func (m *Model) refreshList() {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()
	index := m.currentIndex()
	if index == nil {
		m.list.SetContent(styles.FaintText.Render("No catalogs"))
		return
	}
	if !m.snapshot.Loaded {
		m.list.SetContent(styles.FaintText.Render("Game content is not loaded. Press R to pick a content folder."))
		return
	}
	entries := index.Search(m.filter)
	if len(entries) == 0 {
		m.list.SetContent(styles.FaintText.Render("No matches"))
		return
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = styles.Text.Render(e)
	}
	m.list.SetContent(strings.Join(lines, "\n"))
}

// renderMain renders the main editing window.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderDocument())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	badge := styles.StatusStyle("degraded").Render("NO CONTENT")
	detail := "limited features"
	if m.snapshot.Loaded && m.snapshot.Content != nil {
		c := m.snapshot.Content
		badge = styles.StatusStyle("loaded").Render("CONTENT")
		detail = fmt.Sprintf("%s  %d paks  %s", truncateMiddle(c.Root, 48), len(c.Paks), formatBytes(c.TotalSize()))
		if c.Manifest.Version != "" {
			detail += "  v" + c.Manifest.Version
		}
		if m.snapshot.Stale() {
			badge = styles.StatusStyle("error").Render("MISSING")
			detail = m.snapshot.LastError.Error()
		}
	}

	parts := []string{
		bg.Render(m.appTitle, styles.Logo),
		badge,
		bg.Render(detail, styles.MutedText),
	}
	return bg.FillLine(bg.Join(parts, "  "), m.width)
}

func (m Model) renderDocument() string {
	styles := m.theme.Styles()
	main := m.currentMain()
	if main == nil || main.doc == nil {
		return styles.FaintText.Render("No save file open. Press o to open one.")
	}
	doc := main.doc
	state := styles.StatusStyle("saved").Render("SAVED")
	if doc.Modified {
		state = styles.StatusStyle("modified").Render("MODIFIED")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.AccentText.Render(doc.Name()),
		" ",
		state,
		" ",
		styles.MutedText.Render(fmt.Sprintf("%s  sha %s", formatBytes(int64(doc.Size())), doc.Checksum())),
	)
}

func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	var tabs []string
	current := m.currentIndex()
	for _, idx := range m.indexes() {
		label := titleCase(idx.Name())
		if m.snapshot.Loaded {
			label = fmt.Sprintf("%s (%d)", label, len(idx.Entries()))
		}
		if idx == current {
			tabs = append(tabs, styles.Selected.Padding(0, 1).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Padding(0, 1).Render(label))
		}
	}
	line := strings.Join(tabs, " ")
	if m.filter != "" {
		line += "  " + styles.WarningText.Render("filter: "+m.filter)
	}
	return line
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	left := bg.Render(strings.Join(hints, "  "), styles.MutedText)
	if m.status != "" {
		left = bg.Render(m.status, styles.InfoText) + bg.Spaces(2) + left
	}
	return bg.FillLine(left, m.width)
}
