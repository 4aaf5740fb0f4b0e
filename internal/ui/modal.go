package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dungeonedit/internal/content"
	"github.com/five82/dungeonedit/internal/lifecycle"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// pickerModal asks where the game content is installed.
type pickerModal struct {
	input  textinput.Model
	reply  chan<- lifecycle.LocationChoice
	usable bool
	check  func(string) bool
}

func newPickerModal(current string, reply chan<- lifecycle.LocationChoice) *pickerModal {
	in := textinput.New()
	in.Placeholder = "/path/to/Dungeons/Content/Paks"
	in.CharLimit = 4096
	in.Width = 56
	in.SetValue(current)
	in.Focus()
	m := &pickerModal{input: in, reply: reply, check: content.Usable}
	m.revalidate()
	return m
}

func (m *pickerModal) revalidate() {
	path := strings.TrimSpace(m.input.Value())
	m.usable = path != "" && m.check(path)
}

func (m *pickerModal) answer(choice lifecycle.LocationChoice) {
	select {
	case m.reply <- choice:
	default:
	}
}

func (m *pickerModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Escape):
			m.answer(lifecycle.LocationChoice{Kind: lifecycle.ChooseExit})
			return m, nil, true
		case key.Matches(k, keys.NoContent):
			m.answer(lifecycle.LocationChoice{Kind: lifecycle.ChooseNoContent})
			return m, nil, true
		case key.Matches(k, keys.Confirm):
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				m.answer(lifecycle.LocationChoice{Kind: lifecycle.ChooseNoContent})
			} else {
				m.answer(lifecycle.LocationChoice{Kind: lifecycle.ChoosePath, Path: path})
			}
			return m, nil, true
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.revalidate()
	return m, cmd, false
}

func (m *pickerModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Game Content Location"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Enter the folder holding the game's .pak files."))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	switch {
	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(styles.FaintText.Render("No folder entered"))
	case m.usable:
		b.WriteString(styles.SuccessText.Render("Game content found"))
	default:
		b.WriteString(styles.WarningText.Render("No .pak files in this folder"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("enter: use folder   ctrl+n: continue without content   esc: exit"))
	return placeModal(theme, width, height, 64, b.String())
}

// confirmModal asks a yes/no question.
type confirmModal struct {
	title   string
	message string
	reply   chan<- bool
}

func newConfirmModal(title, message string, reply chan<- bool) *confirmModal {
	return &confirmModal{title: title, message: message, reply: reply}
}

func (m *confirmModal) answer(yes bool) {
	select {
	case m.reply <- yes:
	default:
	}
}

func (m *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}
	switch {
	case key.Matches(k, keys.Yes), key.Matches(k, keys.Confirm):
		m.answer(true)
		return m, nil, true
	case key.Matches(k, keys.No), key.Matches(k, keys.Escape):
		m.answer(false)
		return m, nil, true
	}
	return m, nil, false
}

func (m *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Render(m.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(m.message))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("y: yes   n/esc: no"))
	return placeModal(theme, width, height, 64, b.String())
}

// inputModal collects one line of text and hands it to submit.
type inputModal struct {
	title  string
	input  textinput.Model
	submit func(string) tea.Cmd
}

func newInputModal(title, placeholder, value string, submit func(string) tea.Cmd) *inputModal {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 4096
	in.Width = 48
	in.SetValue(value)
	in.Focus()
	return &inputModal{title: title, input: in, submit: submit}
}

func (m *inputModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Escape):
			return m, nil, true
		case key.Matches(k, keys.Confirm):
			return m, m.submit(strings.TrimSpace(m.input.Value())), true
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

func (m *inputModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("enter: confirm   esc: cancel"))
	return placeModal(theme, width, height, 56, b.String())
}

// placeModal centers a bordered box on the screen.
func placeModal(theme Theme, width, height, boxWidth int, body string) string {
	if width > 0 && boxWidth > width-4 {
		boxWidth = maxInt(20, width-4)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(boxWidth).
		Render(body)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
