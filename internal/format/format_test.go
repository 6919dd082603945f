package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jpl-au/lens/internal/log"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1536, "1.5K"},
		{10 * 1024 * 1024, "10.0M"},
		{3 << 30, "3.0G"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.in))
	}
}

func TestPlugins(t *testing.T) {
	ds := []plugin.Descriptor{
		{ID: "markdown", Themes: []plugin.Theme{"dark", "light"}, FileTypes: []plugin.FileType{"markdown"}},
		{ID: "default", Themes: []plugin.Theme{"notty"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Plugins(&buf, ds, "default"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "dark,light")
	assert.Contains(t, lines[1], "markdown")
	assert.True(t, strings.HasPrefix(lines[2], "default*"))
	assert.True(t, strings.HasSuffix(lines[2], "-"), "empty file types shown as dash")

	buf.Reset()
	require.NoError(t, Plugins(&buf, nil, "default"))
	assert.Empty(t, buf.String())
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Status(&buf, plugin.Status{Count: 0, DefaultID: "default"}))
	assert.Contains(t, buf.String(), "default (not registered)")
	assert.Contains(t, buf.String(), "Plugins:     0")
}

func TestOutcome(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Outcome(&buf, service.Outcome{Plugin: "code", Rule: "theme", Theme: "dark"}))
	assert.Contains(t, buf.String(), "Rule:        theme")
	assert.Contains(t, buf.String(), "(unknown)")
}

func TestLog(t *testing.T) {
	entries := []log.Entry{
		{Source: "cli:view", Action: "render", Path: "a.md", Plugin: "markdown", Rule: "filetype", Success: true},
		{Source: "mcp:render", Action: "render", Success: false, Error: "no plugin available"},
	}

	var buf bytes.Buffer
	require.NoError(t, Log(&buf, entries, false))
	out := buf.String()
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "a.md")
	assert.Contains(t, out, "error: no plugin available")
}

func TestConfig(t *testing.T) {
	values := map[string]string{"render.theme": "dark", "render.width": "80"}
	var buf bytes.Buffer
	require.NoError(t, Config(&buf, []string{"render.theme", "render.width"}, values,
		func(k string) bool { return k == "render.theme" }))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "render.theme  dark", lines[0])
	assert.Equal(t, "render.width  80  (default)", lines[1])
}
