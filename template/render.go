package template

import (
	"fmt"
	"strings"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Vars maps variable names to their values. It is built by the caller and
// treated as read-only by Render; a name written twice keeps the last value.
type Vars map[string]Value

// MissingVariableError reports a placeholder whose name has no entry in the
// variable set at render time.
type MissingVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing template variable: %s", e.Name)
}

// Render substitutes every {{name}} placeholder in tmpl with the matching
// variable's canonical textual form. Text outside complete placeholder pairs
// is copied verbatim, including stray single braces. Rendering fails with a
// *MissingVariableError on the first placeholder without a matching
// variable; an opening {{ with no closing }} is treated the same way since
// no valid placeholder can be satisfied. Templates without {{ are returned
// unchanged. Render is pure: it never mutates vars and keeps no state
// between calls.
func Render(tmpl string, vars Vars) (string, error) {
	if !strings.Contains(tmpl, openDelim) {
		return tmpl, nil
	}

	var b strings.Builder
	b.Grow(len(tmpl))

	rest := tmpl
	for {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])
		rest = rest[start+len(openDelim):]

		end := strings.Index(rest, closeDelim)
		if end < 0 {
			return "", &MissingVariableError{Name: strings.TrimSpace(rest)}
		}
		name := strings.TrimSpace(rest[:end])
		value, ok := vars[name]
		if !ok {
			return "", &MissingVariableError{Name: name}
		}
		b.WriteString(value.String())
		rest = rest[end+len(closeDelim):]
	}
}
