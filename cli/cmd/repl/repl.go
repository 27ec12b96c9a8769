// Package repl is an interactive explorer for a parsed configuration:
// enter a directive path to print it, with fuzzy completion over every
// path in the configuration.
package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ngxconf/conf"
	"github.com/ardnew/ngxconf/log"
)

// editConfigMsg is sent when editing produced a new configuration.
type editConfigMsg struct{ cfg *conf.Config }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a parse
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-parse error.
type editErrorMsg struct{ err error }

const prompt = "➜ "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle         = suggestionStyle.Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	cfg        *conf.Config
	paths      []string
	logger     log.Logger
	history    *History
	historyIdx int
	matches    fuzzy.Matches
	suggIdx    int
	tabActive  bool
	preTabText string
	width      int
	quitting   bool
}

// Run starts the REPL on cfg. History is kept in cacheDir when it is
// non-empty.
func Run(ctx context.Context, cfg *conf.Config, cacheDir string, logger log.Logger) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if cfg == nil {
		return ErrNoConfig
	}

	var historyPath string
	if cacheDir != "" {
		historyPath = filepath.Join(cacheDir, baseHistory)
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("history", historyPath),
		slog.Int("history_len", history.Len()))

	p := tea.NewProgram(newModel(ctx, cfg, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg *conf.Config, history *History, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		cfg:        cfg,
		paths:      cfg.Paths(),
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
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
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil

	case editConfigMsg:
		m.cfg = msg.cfg
		m.paths = m.cfg.Paths()

		return m, tea.Println(resultStyle.Render("configuration updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type a directive path, or :help"))

	default:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			m.refreshMatches()

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.CursorEnd()
			m.refreshMatches()
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle selects the next (dir > 0) or previous candidate and places it in
// the input. A sole candidate is accepted immediately.
func (m model) cycle(dir int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.setInput(m.matches[0].Str)
		m.tabActive = false
		m.matches = nil

		return m
	}

	switch {
	case !m.tabActive:
		m.tabActive = true
		m.preTabText = m.input.Value()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = n - 1
		}

	default:
		m.suggIdx = (m.suggIdx + dir + n) % n
	}

	m.setInput(m.matches[m.suggIdx].Str)

	return m
}

func (m *model) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

func (m *model) refreshMatches() {
	m.matches = computeMatches(m.paths, m.input.Value())

	if !m.tabActive {
		m.suggIdx = -1
	}
}

func (m model) historyMove(dir int) model {
	idx := m.historyIdx + dir

	switch {
	case idx < 0:
		return m

	case idx >= m.history.Len():
		m.historyIdx = m.history.Len()
		m.setInput("")

	default:
		line, err := m.history.Entry(idx)
		if err != nil {
			return m
		}

		m.historyIdx = idx
		m.setInput(line)
	}

	m.tabActive = false
	m.refreshMatches()

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	if err := m.history.Add(input); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history write", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	m.matches = nil

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(input))

	m.logger.TraceContext(m.ctxFunc(), "repl input", slog.String("input", input))

	switch input {
	case ":q", ":quit", ":exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case ":clear":
		return m, tea.ClearScreen

	case ":edit":
		return m, tea.Sequence(echo, m.edit())
	}

	out, err := evaluate(m.cfg, input)
	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

func (m model) edit() tea.Cmd {
	cmd := &editCommand{
		cfg:     m.cfg,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}

		case err != nil:
			return editErrorMsg{err: err}

		case cmd.newCfg == nil:
			return editCancelledMsg{}

		default:
			return editConfigMsg{cfg: cmd.newCfg}
		}
	})
}
