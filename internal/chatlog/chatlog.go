package chatlog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Message limit bounds shared by the panel and the session settings.
const (
	MinLimit     = 3
	MaxLimit     = 100
	DefaultLimit = 50
)

const (
	reasonMissingChat = "missing chat key"
	reasonChatNotList = "chat not a list"
)

// FormatError reports a document that decoded fine but has the wrong shape.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return e.Reason
}

// DecodeError wraps a JSON syntax failure.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode chat json: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Entry is one (role, user, message) triple.
type Entry struct {
	Role    string
	User    string
	Message string
}

// Line returns the display line for the entry.
func (e Entry) Line() string {
	return FormatLine(e.Role, e.User, e.Message)
}

// ClampLimit forces limit into [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	return lo.Clamp(limit, MinLimit, MaxLimit)
}

// Parse decodes a chat document and returns the display lines of its
// trailing window.
func Parse(document []byte, limit int) ([]string, error) {
	var doc any
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return ParseValue(doc, limit)
}

// ParseValue is Parse for an already decoded document.
func ParseValue(doc any, limit int) ([]string, error) {
	entries, err := Entries(doc, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(e Entry, _ int) string { return e.Line() }), nil
}

// Entries returns the well-formed entries inside the trailing window.
func Entries(doc any, limit int) ([]Entry, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &FormatError{Reason: reasonMissingChat}
	}
	raw, ok := obj["chat"]
	if !ok {
		return nil, &FormatError{Reason: reasonMissingChat}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &FormatError{Reason: reasonChatNotList}
	}

	start := max(0, len(list)-ClampLimit(limit))
	return lo.FilterMap(list[start:], func(item any, _ int) (Entry, bool) {
		return toEntry(item)
	}), nil
}

// FormatLine renders a single display line.
func FormatLine(role, user, message string) string {
	if role != "" {
		return "[" + role + "] " + user + ": " + message
	}
	return user + ": " + message
}

// Join renders lines as the text shown in the panel.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// ErrorText is the literal shown in place of the chat when a load fails.
func ErrorText(err error) string {
	return "ERROR: " + err.Error()
}

func toEntry(item any) (Entry, bool) {
	fields, ok := item.([]any)
	if !ok || len(fields) != 3 {
		return Entry{}, false
	}
	role := ""
	if truthy(fields[0]) {
		role = text(fields[0])
	}
	return Entry{Role: role, User: text(fields[1]), Message: text(fields[2])}, true
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

func text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		out, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(out)
	}
}
