package ui

import (
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/chatdock/internal/outbox"
	"github.com/five82/chatdock/internal/settings"
	"github.com/five82/chatdock/internal/viewer"
	"github.com/five82/chatdock/internal/watch"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	fs      afero.Fs
	store   settings.MemoryStore
	viewer  *viewer.Viewer
	outbox  *outbox.Outbox
	model   Model
	reveals [][]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		fs:    afero.NewMemMapFs(),
		store: settings.MemoryStore{},
	}
	h.viewer = viewer.New(h.fs, h.store, nil)
	h.outbox = outbox.New(h.fs, "/out/krita_chat_output.json")
	h.model = New(Options{
		Viewer: h.viewer,
		Outbox: h.outbox,
		Store:  h.store,
		Reveal: func(name string, args ...string) error {
			h.reveals = append(h.reveals, append([]string{name}, args...))
			return nil
		},
	})
	h.update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return h
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "enter":
			h.update(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			h.update(tea.KeyMsg{Type: tea.KeyEsc})
		case "ctrl+r":
			h.update(tea.KeyMsg{Type: tea.KeyCtrlR})
		default:
			h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func (h *harness) writeFile(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(h.fs, path, []byte(content), 0o644))
	require.NoError(t, h.fs.Chtimes(path, mtime, mtime))
}

const twoLines = `{"chat": [["", "Alice", "hello"], ["mod", "Bob", "hi"]]}`

func TestView_PlaceholderBeforeLoad(t *testing.T) {
	h := newHarness(t)
	view := h.model.View()
	assert.Contains(t, view, Placeholder)
	assert.Contains(t, view, "Chat Viewer")
	assert.Contains(t, view, "Max: 50")
}

func TestView_LoadingBeforeWindowSize(t *testing.T) {
	m := New(Options{Store: settings.MemoryStore{}})
	assert.Equal(t, "Loading...", m.View())
}

func TestLoadPrompt_LoadsAndShowsChat(t *testing.T) {
	h := newHarness(t)
	h.writeFile(t, "/chat.json", twoLines, epoch)

	h.press("l", "/chat.json", "enter")

	assert.False(t, h.model.prompting)
	assert.Equal(t, "/chat.json", h.viewer.Path())
	view := h.model.View()
	assert.Contains(t, view, "Alice: hello")
	assert.Contains(t, view, "[mod] Bob: hi")
	assert.Equal(t, "/chat.json", settings.LoadSession(h.store).LastFile)
}

func TestLoadPrompt_EscCancels(t *testing.T) {
	h := newHarness(t)
	h.press("l", "/x.json", "esc")

	assert.False(t, h.model.prompting)
	assert.Empty(t, h.viewer.Path())
	assert.Zero(t, h.viewer.Renders())
}

func TestLoadPrompt_MissingFileShowsError(t *testing.T) {
	h := newHarness(t)
	h.press("l", "/missing.json", "enter")

	assert.Contains(t, h.model.View(), "ERROR:")
	assert.Empty(t, h.viewer.Path())
}

func TestTick_ReloadsChangedFile(t *testing.T) {
	h := newHarness(t)
	h.writeFile(t, "/chat.json", twoLines, epoch)
	h.press("l", "/chat.json", "enter")

	h.writeFile(t, "/chat.json", `{"chat": [["", "Carol", "new message"]]}`, epoch.Add(time.Second))
	cmd := h.update(tickMsg(epoch))

	assert.NotNil(t, cmd, "tick must reschedule")
	assert.Contains(t, h.model.View(), "Carol: new message")
}

func TestLimitKeys_AdjustAndPersist(t *testing.T) {
	h := newHarness(t)

	h.press("-", "-")
	assert.Equal(t, 48, h.viewer.Limit())
	h.press("+")
	assert.Equal(t, 49, h.viewer.Limit())
	assert.Contains(t, h.model.View(), "Max: 49")
	assert.Equal(t, 49, settings.LoadSession(h.store).MessageLimit)
}

func TestSendBar_WritesOutputAndClears(t *testing.T) {
	h := newHarness(t)

	h.press("s")
	require.True(t, h.model.sendVisible)
	h.press("héllo <b>", "enter")

	data, err := afero.ReadFile(h.fs, h.outbox.Path())
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"output\": \"héllo <b>\"\n}", string(data))
	assert.Empty(t, h.model.input.Value())
}

func TestSendBar_BlankDoesNothing(t *testing.T) {
	h := newHarness(t)
	h.press("s", "   ", "enter")

	assert.False(t, h.outbox.Exists())
	assert.False(t, h.model.canSend())
}

func TestSendBar_TypedKeysDoNotTriggerShortcuts(t *testing.T) {
	h := newHarness(t)
	h.press("s", "q+T")

	assert.Equal(t, "q+T", h.model.input.Value())
	assert.Equal(t, 50, h.viewer.Limit())
	assert.Equal(t, defaultThemeName, h.model.theme.Name)
}

func TestSendBar_EscCloses(t *testing.T) {
	h := newHarness(t)
	h.press("s", "esc")

	assert.False(t, h.model.sendVisible)
	assert.NotContains(t, h.model.View(), "[Send]")
}

func TestReveal_OnlyAfterOutputExists(t *testing.T) {
	h := newHarness(t)

	h.press("r")
	assert.Empty(t, h.reveals)

	h.press("s", "hi", "enter", "ctrl+r")
	require.Len(t, h.reveals, 1)
	name, args := outbox.RevealCommand(runtime.GOOS, h.outbox.Path())
	assert.Equal(t, append([]string{name}, args...), h.reveals[0])
}

func TestReveal_ErrorIsSwallowed(t *testing.T) {
	h := newHarness(t)
	h.model.reveal = func(string, ...string) error { return errors.New("no file manager") }
	_, err := h.outbox.Send("hi")
	require.NoError(t, err)

	assert.NotPanics(t, func() { h.press("r") })
}

func TestCycleTheme_PersistsName(t *testing.T) {
	h := newHarness(t)
	h.press("T")

	assert.Equal(t, NextTheme(defaultThemeName), h.model.theme.Name)
	assert.Equal(t, h.model.theme.Name, h.store[settings.ThemeKey])
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	h := newHarness(t)
	h.press("?")
	assert.Contains(t, h.model.View(), "Keyboard Shortcuts")

	h.press("x")
	assert.NotContains(t, h.model.View(), "Keyboard Shortcuts")
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	cmd := h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestHighlightText_KeepsText(t *testing.T) {
	text := "[mod] Bob: hi\nno colon here\nAlice: a: b"
	out := HighlightText(text, GetTheme(""))
	for _, line := range strings.Split(text, "\n") {
		assert.Contains(t, out, line)
	}
}

func TestWaitForNudge_ReturnsAfterNotifierClose(t *testing.T) {
	n, err := watch.NewNotifier()
	require.NoError(t, err)
	cmd := waitForNudge(n)
	require.NotNil(t, cmd)

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	require.NoError(t, n.Close())

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("nudge command still blocked after Close")
	}
}

func TestKeys_LoadAndRevealBindings(t *testing.T) {
	keys := DefaultKeyMap()
	assert.Equal(t, []string{"l", "o"}, keys.LoadFile.Keys())
	assert.Equal(t, []string{"r"}, keys.Reveal.Keys())
	assert.Equal(t, []string{"ctrl+r"}, keys.RevealAlt.Keys())

	h := newHarness(t)
	h.press("o")
	assert.True(t, h.model.prompting)
}

func TestHeader_ShowsPathAndModTime(t *testing.T) {
	h := newHarness(t)
	h.writeFile(t, "/chat.json", twoLines, epoch)
	h.press("l", "/chat.json", "enter")

	assert.Contains(t, h.model.View(), "/chat.json @ "+h.viewer.ModTime().Format(timeLayout))
}

func TestHeader_NotWatchingBeforeLoad(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.model.View(), "not watching")
}

func TestHelp_ListsThemes(t *testing.T) {
	h := newHarness(t)
	h.press("?")
	assert.Contains(t, h.model.View(), "Themes: "+strings.Join(ThemeNames(), ", "))
}

func TestSendBar_FocusedRowUsesFocusStyle(t *testing.T) {
	theme := GetTheme("")
	require.NotEmpty(t, theme.FocusBg)
	assert.Equal(t, lipgloss.Color(theme.FocusBg), theme.Styles().InputFocus.GetBackground())
}
