// Package tmpl compiles user-supplied shell command templates such as the
// alert command. Templates use text/template syntax with a small set of
// helpers and fail on missing keys.
//
//	shq        quote a value for sh: {{ .Name | shq }}
//	upper      uppercase
//	lower      lowercase
//	trunc N    keep the first N runes
//	join SEP   join a string slice
package tmpl

import (
	"fmt"
	"strings"
	"text/template"
)

// shq wraps s in single quotes, closing and reopening the quote around any
// embedded single quote.
func shq(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func trunc(n int, s string) string {
	r := []rune(s)
	if n < 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}

func join(sep string, items []string) string {
	return strings.Join(items, sep)
}

var funcs = template.FuncMap{
	"shq":   shq,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"trunc": trunc,
	"join":  join,
}

// Template is a compiled command template. It is safe for concurrent use.
type Template struct {
	src string
	t   *template.Template
}

// Compile parses src.
func Compile(src string) (*Template, error) {
	t, err := template.New("command").Funcs(funcs).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{src: src, t: t}, nil
}

// String returns the source the template was compiled from.
func (t *Template) String() string { return t.src }

// Execute renders the template against data.
func (t *Template) Execute(data any) (string, error) {
	var sb strings.Builder
	if err := t.t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return sb.String(), nil
}

// Render compiles src and executes it once.
func Render(src string, data any) (string, error) {
	t, err := Compile(src)
	if err != nil {
		return "", err
	}
	return t.Execute(data)
}
