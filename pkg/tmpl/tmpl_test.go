package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type target struct {
	ID   string
	Name string
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		src  string
		data any
		want string
	}{
		{"plain text", "tput bel", nil, "tput bel"},
		{"fields", "echo {{ .ID }} {{ .Name }}", target{ID: "t-1", Name: "Tea"}, "echo t-1 Tea"},
		{"map data", "say {{ .Name }}", map[string]string{"Name": "Tea"}, "say Tea"},
		{"shq spaces", "say {{ .Name | shq }}", target{Name: "green tea"}, "say 'green tea'"},
		{"shq single quote", "say {{ .Name | shq }}", target{Name: "Mom's tea"}, `say 'Mom'\''s tea'`},
		{"shq empty", "say {{ .Name | shq }}", target{}, "say ''"},
		{"shq command substitution", "say {{ .Name | shq }}", target{Name: "$(whoami)"}, "say '$(whoami)'"},
		{"upper", "{{ .ID | upper }}", target{ID: "t-1"}, "T-1"},
		{"lower", "{{ .Name | lower }}", target{Name: "EGGS"}, "eggs"},
		{"trunc", "{{ .Name | trunc 3 }}", target{Name: "Pasta"}, "Pas"},
		{"trunc short", "{{ .Name | trunc 10 }}", target{Name: "Tea"}, "Tea"},
		{"join", `{{ .Tags | join "," }}`, map[string][]string{"Tags": {"a", "b"}}, "a,b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.src, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Errors(t *testing.T) {
	for name, src := range map[string]string{
		"unclosed action": "say {{ .Name ",
		"unknown func":    "{{ nosuchfunc .Name }}",
		"missing field":   "{{ .Missing }}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Render(src, target{Name: "Tea"})
			assert.Error(t, err)
		})
	}

	_, err := Render("{{ .Missing }}", map[string]string{})
	assert.Error(t, err, "missing map key")
}

func TestCompile_Reuse(t *testing.T) {
	tpl, err := Compile("say {{ .Name | shq }}")
	require.NoError(t, err)
	assert.Equal(t, "say {{ .Name | shq }}", tpl.String())

	for _, name := range []string{"Tea", "Eggs"} {
		got, err := tpl.Execute(target{Name: name})
		require.NoError(t, err)
		assert.Equal(t, "say '"+name+"'", got)
	}
}
