package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcomeJSON struct {
	Plugin   string `json:"plugin"`
	Rule     string `json:"rule"`
	Theme    string `json:"theme"`
	FileType string `json:"file_type"`
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		plugin string
		rule   string
	}{
		{"file type and theme", []string{"dark", "markdown"}, "markdown", "filetype+theme"},
		{"file type only", []string{"sepia", "csv"}, "table", "filetype"},
		{"unknown file type falls to theme", []string{"tokyo-night", "image"}, "default", "theme"},
		{"theme only", []string{"light"}, "default", "theme"},
		{"file type without theme", []string{"sepia", "go"}, "code", "filetype"},
		{"default", []string{"sepia"}, "default", "default"},
		{"diff", []string{"notty", "patch"}, "diff", "filetype+theme"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			var o outcomeJSON
			args := append([]string{"resolve"}, tc.args...)
			out := env.runStdout(append(args, "-o", "json")...)
			require.NoError(t, json.Unmarshal([]byte(out), &o), out)
			assert.Equal(t, tc.plugin, o.Plugin)
			assert.Equal(t, tc.rule, o.Rule)
		})
	}
}

func TestResolve_Text(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("resolve", "dark", "go")
	env.contains(out, "Plugin:      code")
	env.contains(out, "Rule:        filetype+theme")
	env.contains(out, "File type:   go")

	out = env.run("resolve", "dark")
	env.contains(out, "File type:   (unknown)")
}

func TestResolve_FileFlag(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("resolve", "light", "--file", "report.tsv")
	env.contains(out, "Plugin:      table")
	env.contains(out, "File type:   tsv")
}

func TestResolve_Auto(t *testing.T) {
	env := newTestEnv(t)

	var o outcomeJSON
	require.NoError(t, json.Unmarshal([]byte(env.runStdout("resolve", "auto", "markdown", "-o", "json")), &o))
	assert.Equal(t, "notty", o.Theme)
}

func TestResolve_NoDefault(t *testing.T) {
	env := newTestEnv(t)
	env.run("config", "render.default_plugin", "missing")

	out, err := env.runErr("resolve", "sepia")
	require.Error(t, err)
	env.contains(out, "no plugin")
}

func TestResolve_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("resolve")
	assert.Error(t, err)

	_, err = env.runErr("resolve", "dark", "Bad Type")
	assert.Error(t, err)
}
