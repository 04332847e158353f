// Package browse implements an interactive fuzzy finder over the key paths of
// a parsed document.
package browse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/bulba/lang"
	"github.com/ardnew/bulba/log"
)

const (
	filterPrompt  = "❯ "
	defaultWidth  = 80
	defaultHeight = 12

	// maxPreviewSize limits the width of a value preview.
	maxPreviewSize = 40

	// chromeHeight is the number of lines of View that are not list rows:
	// the filter line and the status line.
	chromeHeight = 2
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	previewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type options struct {
	input    io.Reader
	output   io.Writer
	inputTTY bool
	history  *History
	logger   log.Logger
}

// Option configures [Run].
type Option func(*options)

// WithInput reads key presses from r.
func WithInput(r io.Reader) Option {
	return func(o *options) { o.input = r }
}

// WithInputTTY reads key presses from the controlling terminal, for use when
// standard input holds the document.
func WithInputTTY() Option {
	return func(o *options) { o.inputTTY = true }
}

// WithOutput draws the interface on w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithHistory ranks previously selected paths first and records the new
// selection.
func WithHistory(h *History) Option {
	return func(o *options) { o.history = h }
}

// WithLogger sets the logger for trace records.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Run shows the finder until the user selects a key path or quits. It
// returns the selected entry, or nil if the user quit.
func Run(ctx context.Context, doc *lang.Document, opts ...Option) (*lang.Entry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := newModel(ctx, doc, o.history, o.logger)
	if len(m.entries) == 0 {
		return nil, ErrEmptyDocument
	}

	popts := []tea.ProgramOption{tea.WithContext(ctx)}

	switch {
	case o.inputTTY:
		popts = append(popts, tea.WithInputTTY())
	case o.input != nil:
		popts = append(popts, tea.WithInput(o.input))
	}

	if o.output != nil {
		popts = append(popts, tea.WithOutput(o.output))
	}

	final, err := tea.NewProgram(m, popts...).Run()
	if err != nil {
		return nil, err
	}

	fm, ok := final.(model)
	if !ok {
		return nil, ErrUnexpectedModel
	}

	if fm.selected == nil {
		return nil, nil
	}

	o.logger.TraceContext(ctx, "browse selected",
		slog.String("path", fm.selected.Path))

	if o.history != nil {
		if err := o.history.Add(fm.selected.Path); err != nil {
			o.logger.WarnContext(ctx, "browse history not saved",
				slog.Any("error", err))
		}
	}

	return fm.selected, nil
}

// model is the Bubble Tea model for the finder.
type model struct {
	ctxFunc  func() context.Context
	logger   log.Logger
	input    textinput.Model
	entries  []lang.Entry
	paths    []string
	recent   []string
	matches  fuzzy.Matches // rows currently listed
	selected *lang.Entry
	cursor   int // index into matches
	offset   int // index of the first visible row
	width    int
	height   int
	quitting bool
}

func newModel(
	ctx context.Context,
	doc *lang.Document,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(filterPrompt)
	ti.Placeholder = "filter key paths"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	m := model{
		ctxFunc: func() context.Context { return ctx },
		logger:  logger,
		input:   ti,
		width:   defaultWidth,
		height:  defaultHeight,
	}

	for e := range doc.All() {
		m.entries = append(m.entries, e)
		m.paths = append(m.paths, e.Path)
	}

	if history != nil {
		m.recent = history.Recent()
	}

	m.refreshMatches()

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height, chromeHeight+1)
		m.input.Width = msg.Width - len(filterPrompt) - 2
		m.scrollToCursor()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"browse keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		if len(m.matches) == 0 {
			return m, nil
		}

		entry := m.entries[m.matches[m.cursor].Index]
		m.selected = &entry
		m.quitting = true

		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlP, tea.KeyShiftTab:
		m.moveCursor(-1)

		return m, nil

	case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
		m.moveCursor(1)

		return m, nil

	case tea.KeyPgUp:
		m.moveCursor(-m.rows())

		return m, nil

	case tea.KeyPgDown:
		m.moveCursor(m.rows())

		return m, nil
	}

	var cmd tea.Cmd

	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.refreshMatches()
	}

	return m, cmd
}

// refreshMatches recomputes the listed rows from the filter text and resets
// the cursor. An empty filter lists every path, recently selected ones first.
func (m *model) refreshMatches() {
	m.cursor, m.offset = 0, 0

	if filter := strings.TrimSpace(m.input.Value()); filter != "" {
		m.matches = fuzzy.Find(filter, m.paths)

		return
	}

	index := make(map[string]int, len(m.paths))
	for i, p := range m.paths {
		index[p] = i
	}

	m.matches = make(fuzzy.Matches, 0, len(m.paths))
	listed := make(map[int]bool, len(m.recent))

	for _, p := range m.recent {
		if i, ok := index[p]; ok && !listed[i] {
			listed[i] = true
			m.matches = append(m.matches, fuzzy.Match{Str: p, Index: i})
		}
	}

	for i, p := range m.paths {
		if !listed[i] {
			m.matches = append(m.matches, fuzzy.Match{Str: p, Index: i})
		}
	}
}

// rows returns the number of list rows that fit in the window.
func (m model) rows() int {
	return max(m.height-chromeHeight, 1)
}

func (m *model) moveCursor(delta int) {
	if len(m.matches) == 0 {
		return
	}

	m.cursor = min(max(m.cursor+delta, 0), len(m.matches)-1)
	m.scrollToCursor()
}

func (m *model) scrollToCursor() {
	rows := m.rows()

	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+rows:
		m.offset = m.cursor - rows + 1
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	end := min(m.offset+m.rows(), len(m.matches))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.matches[i], i == m.cursor))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("%d/%d", len(m.matches), len(m.entries))
	if len(m.matches) == 0 {
		status += "  no matching key paths"
	}

	b.WriteString(hintStyle.Render(status))

	return b.String()
}

// renderRow renders one key path with its matched characters highlighted,
// followed by a preview of its value.
func (m model) renderRow(match fuzzy.Match, selected bool) string {
	baseStyle, highlight, marker := pathStyle, matchStyle, "  "
	if selected {
		baseStyle, highlight = selectedStyle, selectedStyle.Bold(true)
		marker = cursorStyle.Render("> ")
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	b.WriteString(marker)

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	b.WriteString("  ")
	b.WriteString(formatPreview(m.entries[match.Index].Value))

	return b.String()
}

// formatPreview returns a short, styled preview of a value.
func formatPreview(v *lang.Value) string {
	if !v.IsScalar() {
		return sectionStyle.Render(v.String())
	}

	s := v.String()
	if v.Type == lang.TypeString {
		s = fmt.Sprintf("%q", s)
	}

	if len(s) > maxPreviewSize {
		s = s[:maxPreviewSize-3] + "..."
	}

	return previewStyle.Render(s)
}
