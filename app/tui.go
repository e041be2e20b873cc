package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/prasanthlucy/Resume-project-xeedo/search"
)

// terminalWidth reports the terminal width before the first WindowSizeMsg
// arrives, defaulting to 100 when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 100
	}
	return w
}

// Styles (exported styling used by CLI usage/version output too)
var (
	appStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))

	subHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a9b1d6"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e")).
			Bold(true)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1a1b26")).
			Background(lipgloss.Color("#e0af68"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9ece6a"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

const (
	fieldKeywords = iota
	fieldName
	fieldCTC
	fieldCount
)

type model struct {
	loader *search.Loader
	dir    string
	window int

	inputs []textinput.Model
	focus  int

	col     *search.Collection
	failed  []search.FileError
	loading bool
	loadErr error

	// filtered view, recomputed on every keystroke
	results []search.Document
	terms   []string
	cursor  int

	width    int
	height   int
	quitting bool
}

type loadedMsg struct {
	res search.BatchResult
	err error
}

func newModel(loader *search.Loader, dir string, window int) model {
	placeholders := [fieldCount]string{"Keywords (e.g. java developer)", "Candidate name", "Compensation / CTC"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 0
		inputs[i] = ti
	}
	inputs[fieldKeywords].Focus()

	return model{
		loader:  loader,
		dir:     dir,
		window:  window,
		inputs:  inputs,
		col:     search.NewCollection(),
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadDir())
}

// loadDir scans the directory in the background; the view keeps rendering
// while extraction runs.
func (m model) loadDir() tea.Cmd {
	loader, dir := m.loader, m.dir
	return func() tea.Msg {
		res, err := loader.LoadDirectory(context.Background(), dir)
		return loadedMsg{res: res, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loading = false
		m.failed = msg.res.Failed
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		if err := m.col.Append(msg.res.Added...); err != nil {
			m.loadErr = err
			return m, nil
		}
		m.refilter()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.refilter()
		return m, cmd
	}
	return m, nil
}

func (m *model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// refilter recomputes the filtered view from the three input fields. The
// filters value is the only place the query lives.
func (m *model) refilter() {
	filters := search.Filters{
		Keywords: m.inputs[fieldKeywords].Value(),
		Name:     m.inputs[fieldName].Value(),
		CTC:      m.inputs[fieldCTC].Value(),
	}
	m.terms = filters.Terms()
	m.results = m.col.Filter(m.terms)
	if m.cursor >= len(m.results) {
		m.cursor = len(m.results) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m model) View() string {
	width := m.width
	if width <= 0 {
		width = terminalWidth()
	}

	if m.quitting {
		return "Goodbye!\n"
	}

	var parts []string

	logoTop := " ▀▄▀ █▀▀ █▀▀ █▀▄ █▀█"
	logoBottom := fmt.Sprintf(" █ █ ██▄ ██▄ █▄▀ █▄█  v%s", version)
	parts = append(parts, "", headerStyle.Render(logoTop+"\n"+logoBottom), "")

	if m.loading {
		parts = append(parts, warningStyle.Render("⏳ Loading resumes from "+m.dir+" ..."))
		return strings.Join(parts, "\n")
	}
	if m.loadErr != nil {
		parts = append(parts, errorStyle.Render("Error: "+m.loadErr.Error()))
		parts = append(parts, metaStyle.Render("'esc' quit"))
		return strings.Join(parts, "\n")
	}

	status := fmt.Sprintf("📋 Matched: %d of %d resumes (%d recent)",
		len(m.results), m.col.Len(), len(m.col.Recent(search.DefaultRecentWindow)))
	if len(m.failed) > 0 {
		status += warningStyle.Render(fmt.Sprintf("  •  %d files failed", len(m.failed)))
	}
	parts = append(parts, successStyle.Render(status))

	for i := range m.inputs {
		parts = append(parts, m.inputs[i].View())
	}
	parts = append(parts, "")

	parts = append(parts, m.renderResults(width))

	parts = append(parts, metaStyle.Render("🔚 tab: next field • ↑/↓: select result • esc: quit"))
	return strings.Join(parts, "\n")
}

// renderResults shows the filtered list with the selected entry expanded to
// its best excerpt.
func (m model) renderResults(width int) string {
	if len(m.results) == 0 {
		return appStyle.Width(width - 4).Render("No resumes match the current filters.")
	}

	var b strings.Builder
	for i, d := range m.results {
		marker := "  "
		nameLine := renderSegments(search.Highlight(d.Name, m.terms))
		if i == m.cursor {
			marker = selectedStyle.Render("▶ ")
		}
		b.WriteString(marker + nameLine + "\n")

		if i == m.cursor {
			if meta := d.MetaLine(); meta != "" {
				b.WriteString("    " + metaStyle.Render(meta) + "\n")
			}
			excerpt := search.BestExcerpt(d.Text, m.terms, m.window)
			b.WriteString("    " + renderSegments(search.Highlight(excerpt, m.terms)) + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("\nResult %d of %d", m.cursor+1, len(m.results)))

	return appStyle.Width(width - 4).Render(strings.TrimRight(b.String(), "\n"))
}

// renderSegments concatenates highlight segments, styling the matched ones.
func renderSegments(segs []search.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Matched {
			b.WriteString(highlightStyle.Render(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
