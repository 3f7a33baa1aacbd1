package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode/utf8"
)

// maxDetailRunes ограничивает текст ошибки, взятый из не-JSON тела (HTML-страницы и т.п.).
const maxDetailRunes = 200

// Error — ответ API с кодом не из 2xx. Тело разбирается в формате DRF:
// {"detail": "..."}, {"error": "..."} или {"field": ["message", ...]}.
type Error struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "; %s: %s", name, strings.Join(e.Fields[name], " "))
		}
	}
	return b.String()
}

// IsStatus сообщает, является ли err ошибкой API с кодом code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

func parseError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		e.Detail = truncateRunes(strings.TrimSpace(string(body)), maxDetailRunes)
		return e
	}

	for name, raw := range fields {
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			if name == "detail" || name == "error" {
				e.Detail = msg
				continue
			}
			e.addField(name, msg)
			continue
		}
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil {
			if name == "non_field_errors" {
				e.Detail = strings.Join(msgs, " ")
				continue
			}
			e.addField(name, msgs...)
		}
	}
	return e
}

func (e *Error) addField(name string, msgs ...string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[name] = append(e.Fields[name], msgs...)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
