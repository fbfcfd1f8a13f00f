package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/chatdock/internal/chatlog"
	"github.com/five82/chatdock/internal/watch"
)

// HighlightText styles every line of a rendered chat with the theme's tag and
// user colors. Lines are separated by "\n" and no wrapping is applied.
func HighlightText(text string, theme Theme) string {
	styles := theme.Styles()
	rows := strings.Split(text, "\n")
	for i, row := range rows {
		rows[i] = highlightLine(row, styles)
	}
	return strings.Join(rows, "\n")
}

func highlightLine(line string, styles Styles) string {
	var b strings.Builder
	for _, seg := range chatlog.Segments(line) {
		if seg.Class == chatlog.ClassNone {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(styles.ClassStyle(seg.Class).Render(seg.Text))
	}
	return b.String()
}

// renderChat builds the viewport content for the current viewer text.
func (m Model) renderChat(width int) string {
	styles := m.theme.Styles()
	text := m.viewer.Text()

	var content string
	switch {
	case text == "":
		content = styles.FaintText.Render(Placeholder)
	case m.viewer.Err() != nil:
		content = styles.DangerText.Render(text)
	default:
		content = HighlightText(text, m.theme)
	}

	if width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

// renderMain composes header, chat box, optional input rows and footer.
func (m Model) renderMain() string {
	styles := m.theme.Styles()

	rows := []string{m.renderHeader()}

	box := styles.BoxFocus
	if m.sendVisible || m.prompting {
		box = styles.Box
	}
	rows = append(rows, box.Render(m.chat.View()))

	if m.prompting {
		rows = append(rows, m.renderPrompt())
	}
	if m.sendVisible {
		rows = append(rows, m.renderSendBar())
	}
	rows = append(rows, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	title := styles.Header.Bold(true).Render(" Chat Viewer ")
	limit := styles.Header.Render(fmt.Sprintf(" Max: %d ", m.viewer.Limit()))

	room := m.width - lipgloss.Width(title) - lipgloss.Width(limit) - 2
	if room < 0 {
		room = 0
	}

	status := "not watching"
	if m.viewer.Watching() == watch.Tracking {
		stamp := ""
		if mod := m.viewer.ModTime(); !mod.IsZero() {
			stamp = " @ " + mod.Format(timeLayout)
		}
		pathRoom := max(room-runewidth.StringWidth(stamp), 0)
		status = runewidth.Truncate(m.viewer.Path(), pathRoom, "…") + stamp
	}
	status = runewidth.Truncate(status, room, "…")
	status = styles.Header.Foreground(lipgloss.Color(m.theme.Muted)).
		Width(room + 2).
		Align(lipgloss.Right).
		Render(status + " ")

	return lipgloss.JoinHorizontal(lipgloss.Top, title, limit, status)
}

func (m Model) renderPrompt() string {
	styles := m.theme.Styles()
	return styles.InputFocus.Width(m.width).Render(m.prompt.View())
}

func (m Model) renderSendBar() string {
	styles := m.theme.Styles()

	button := styles.FaintText.Render("[Send]")
	if m.canSend() {
		button = styles.AccentText.Bold(true).Render("[Send]")
	}
	label := styles.KeyText.Render("> ")
	row := lipgloss.JoinHorizontal(lipgloss.Top, label, m.input.View(), " ", button)
	if m.input.Focused() {
		return styles.InputFocus.Width(m.width).Render(row)
	}
	return row
}

func (m Model) renderFooter() string {
	m.help.Styles.ShortKey = m.theme.Styles().KeyText
	m.help.Styles.ShortDesc = m.theme.Styles().MutedText
	if m.prompting || (m.sendVisible && m.input.Focused()) {
		return m.help.View(inputKeyMap(m.keys))
	}
	return m.help.View(m.keys)
}
