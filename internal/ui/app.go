package ui

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/chatdock/internal/outbox"
	"github.com/five82/chatdock/internal/settings"
	"github.com/five82/chatdock/internal/viewer"
	"github.com/five82/chatdock/internal/watch"
)

// Options configures the UI.
type Options struct {
	Viewer    *viewer.Viewer
	Outbox    *outbox.Outbox
	Store     settings.Store
	Notifier  *watch.Notifier // optional
	Logger    *slog.Logger
	Reveal    outbox.Runner // nil uses outbox.StartDetached
	PollTick  time.Duration
	ThemeName string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	viewer   *viewer.Viewer
	outbox   *outbox.Outbox
	store    settings.Store
	notifier *watch.Notifier
	logger   *slog.Logger
	reveal   outbox.Runner
	pollTick time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Chat area
	chat         viewport.Model
	chatRendered int // viewer.Renders() at last SetContent

	// Send bar
	sendVisible bool
	input       textinput.Model

	// Load prompt
	prompting bool
	prompt    textinput.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultWatchInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	v := opts.Viewer
	if v == nil {
		v = viewer.New(nil, opts.Store, logger)
	}

	input := textinput.New()
	input.Placeholder = "Type message here..."
	input.CharLimit = MessageCharLimit
	input.Prompt = ""

	prompt := textinput.New()
	prompt.Placeholder = "path/to/chat.json"
	prompt.CharLimit = PathCharLimit
	prompt.Prompt = "Load: "

	return Model{
		viewer:       v,
		outbox:       opts.Outbox,
		store:        opts.Store,
		notifier:     opts.Notifier,
		logger:       logger,
		reveal:       opts.Reveal,
		pollTick:     pollTick,
		theme:        GetTheme(opts.ThemeName),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		chatRendered: -1,
		input:        input,
		prompt:       prompt,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.notifier != nil {
		if path := m.viewer.Path(); path != "" {
			m.follow(path)
		}
		cmds = append(cmds, waitForNudge(m.notifier))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tickMsg:
		m.viewer.Tick()
		m.refreshChat()
		return m, tickCmd(m.pollTick)

	case nudgeMsg:
		m.viewer.Tick()
		m.refreshChat()
		return m, waitForNudge(m.notifier)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.prompting {
		return m.handlePromptKey(msg)
	}
	if m.sendVisible && m.input.Focused() {
		return m.handleSendKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.store != nil {
			if err := m.store.Write(settings.ThemeKey, m.theme.Name); err != nil {
				m.logger.Warn("save theme failed", "error", err)
			}
		}
		m.chatRendered = -1
		m.refreshChat()
		return m, nil

	case key.Matches(msg, m.keys.LoadFile):
		m.prompting = true
		m.prompt.SetValue(m.viewer.Path())
		m.prompt.CursorEnd()
		m.layout()
		cmd := m.prompt.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleSend):
		m.sendVisible = !m.sendVisible
		m.layout()
		if m.sendVisible {
			cmd := m.input.Focus()
			return m, cmd
		}
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Reveal):
		m.revealOutput()
		return m, nil

	case key.Matches(msg, m.keys.LimitUp):
		m.viewer.SetLimit(m.viewer.Limit() + 1)
		m.refreshChat()
		return m, nil

	case key.Matches(msg, m.keys.LimitDown):
		m.viewer.SetLimit(m.viewer.Limit() - 1)
		m.refreshChat()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.chat.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.chat.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// handlePromptKey drives the load prompt.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		path := expandHome(strings.TrimSpace(m.prompt.Value()))
		m.closePrompt()
		if path == "" {
			return m, nil
		}
		if err := m.viewer.Load(path); err == nil || m.viewer.Path() == path {
			m.follow(path)
		}
		m.refreshChat()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleSendKey drives the send bar while it has focus.
func (m Model) handleSendKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.send()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.sendVisible = false
		m.input.Blur()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.RevealAlt):
		m.revealOutput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// canSend reports whether the send button is enabled.
func (m Model) canSend() bool {
	return strings.TrimSpace(m.input.Value()) != ""
}

func (m *Model) send() {
	if !m.canSend() || m.outbox == nil {
		return
	}
	sent, err := m.outbox.Send(m.input.Value())
	if err != nil {
		m.logger.Warn("send failed", "path", m.outbox.Path(), "error", err)
		return
	}
	if sent {
		m.logger.Info("message sent", "path", m.outbox.Path())
		m.input.Reset()
	}
}

func (m *Model) revealOutput() {
	if m.outbox == nil {
		return
	}
	if err := m.outbox.Reveal(m.reveal); err != nil {
		m.logger.Warn("reveal failed", "path", m.outbox.Path(), "error", err)
	}
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.Reset()
	m.layout()
}

func (m *Model) follow(path string) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.Follow(path); err != nil {
		m.logger.Debug("fsnotify follow failed", "path", path, "error", err)
	}
}

// layout sizes the viewport around the visible chrome.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	chrome := headerHeight + borderHeight + footerHeight
	if m.sendVisible {
		chrome += inputHeight
	}
	if m.prompting {
		chrome += inputHeight
	}
	width := max(m.width-2, 1)
	height := max(m.height-chrome, 1)

	if m.chat.Width == 0 && m.chat.Height == 0 {
		m.chat = viewport.New(width, height)
	} else {
		m.chat.Width = width
		m.chat.Height = height
	}
	m.input.Width = max(m.width-14, 1)
	m.prompt.Width = max(m.width-8, 1)
	m.help.Width = m.width

	m.chatRendered = -1
	m.refreshChat()
}

// refreshChat re-renders the viewport when the viewer text changed.
func (m *Model) refreshChat() {
	if !m.ready || m.chatRendered == m.viewer.Renders() {
		return
	}
	m.chat.SetContent(m.renderChat(m.chat.Width))
	m.chat.GotoBottom()
	m.chatRendered = m.viewer.Renders()
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Messages

type tickMsg time.Time

type nudgeMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForNudge(n *watch.Notifier) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-n.Events(); !ok {
			return nil
		}
		return nudgeMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
