package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/ecs-layout/manifest"
	"github.com/wippyai/ecs-layout/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateList modelState = iota
	stateDetail
)

type browserModel struct {
	err      error
	plans    map[schema.Width][]componentPlan
	filter   textinput.Model
	filename string
	widths   []schema.Width
	visible  []int
	widthIdx int
	selected int
	state    modelState
}

func newBrowserModel(filename string, m *manifest.Manifest, widths []schema.Width) *browserModel {
	ti := textinput.New()
	ti.Placeholder = "filter components"
	ti.Prompt = "/ "
	ti.Width = 30

	bm := &browserModel{
		filename: filename,
		filter:   ti,
		plans:    make(map[schema.Width][]componentPlan),
		state:    stateList,
	}

	// the browser always offers both widths, starting with the requested one
	first := m.ResolveWidth(widths[0])
	bm.widths = []schema.Width{first, otherWidth(first)}
	for _, w := range bm.widths {
		plans, err := planAll(m, []schema.Width{w})
		if err != nil {
			bm.err = err
			return bm
		}
		bm.plans[w] = plans
	}
	bm.refilter()
	return bm
}

func otherWidth(w schema.Width) schema.Width {
	if w == schema.Width32 {
		return schema.Width64
	}
	return schema.Width32
}

func (m *browserModel) current() []componentPlan {
	return m.plans[m.widths[m.widthIdx]]
}

func (m *browserModel) refilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, p := range m.current() {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filter.Focused() {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "enter":
			m.filter.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.refilter()
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		if m.state == stateList {
			return m, m.filter.Focus()
		}

	case "up", "k":
		if m.state == stateList && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateList && m.selected < len(m.visible)-1 {
			m.selected++
		}

	case "tab", "w":
		m.widthIdx = (m.widthIdx + 1) % len(m.widths)
		m.refilter()

	case "enter":
		if m.state == stateList && len(m.visible) > 0 {
			m.state = stateDetail
		}

	case "esc":
		m.state = stateList
	}

	return m, nil
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder
	w := m.widths[m.widthIdx]

	b.WriteString(titleStyle.Render("ECS Layout"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(typeStyle.Render(fmt.Sprintf("  width %d", w)))
	b.WriteString("\n\n")

	switch m.state {
	case stateList:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no components match"))
			b.WriteString("\n")
		}
		plans := m.current()
		for i, idx := range m.visible {
			p := plans[idx]
			line := fmt.Sprintf("%-20s size %-4d align %d", p.Name, p.Size, p.Align)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + nameStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter fields • / filter • tab width • q quit"))

	case stateDetail:
		p := m.current()[m.visible[m.selected]]
		b.WriteString(fmt.Sprintf("%s  size %d  align %d\n", nameStyle.Render(p.Name), p.Size, p.Align))
		b.WriteString(helpStyle.Render("fingerprint " + p.Fingerprint))
		b.WriteString("\n")
		b.WriteString(fieldTable(p).String())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab width • esc back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, m *manifest.Manifest, widths []schema.Width) error {
	p := tea.NewProgram(newBrowserModel(filename, m, widths), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
