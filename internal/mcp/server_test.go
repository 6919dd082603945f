package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jpl-au/lens/internal/config"
	"github.com/jpl-au/lens/internal/service"
	"github.com/jpl-au/lens/plugin"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlers(t *testing.T) *handlers {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := plugin.New(plugin.WithLogger(logger))
	upper := plugin.RenderFunc(func(_ context.Context, w io.Writer, src []byte, o plugin.RenderOptions) error {
		_, err := io.WriteString(w, string(o.Theme)+":"+string(src))
		return err
	})
	svc := service.New(reg, &config.Config{}, "mcp:test", logger)
	svc.Populate(func() []plugin.Descriptor {
		return []plugin.Descriptor{
			{ID: "md", Themes: []plugin.Theme{"dark"}, FileTypes: []plugin.FileType{"markdown"}, Renderer: upper},
			{ID: "code", Themes: []plugin.Theme{"dark", "light"}, FileTypes: []plugin.FileType{"go", "markdown"}, Renderer: upper},
			{ID: plugin.DefaultID, Themes: []plugin.Theme{"notty"}, FileTypes: []plugin.FileType{"text"}, Renderer: upper},
		}
	})
	return &handlers{svc: svc}
}

// isolate points both config scopes at fresh temp directories.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestListPlugins(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{"all", nil, []string{"md", "code", plugin.DefaultID}},
		{"by theme", map[string]any{"theme": "dark"}, []string{"md", "code"}},
		{"by file type", map[string]any{"file_type": "go"}, []string{"code"}},
		{"by both", map[string]any{"theme": "light", "file_type": "markdown"}, []string{"code"}},
		{"no match", map[string]any{"theme": "sepia"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{"ids_only": true}
			for k, v := range tt.args {
				args[k] = v
			}
			res, err := h.listPlugins(ctx, call(args))
			require.NoError(t, err)

			var ids []string
			require.NoError(t, json.Unmarshal([]byte(text(t, res)), &ids))
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("summaries mark the default", func(t *testing.T) {
		res, err := h.listPlugins(ctx, call(nil))
		require.NoError(t, err)

		var out []pluginSummary
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		require.Len(t, out, 3)
		assert.False(t, out[0].Default)
		assert.True(t, out[2].Default)
	})
}

func TestResolveTool(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	t.Run("file type and theme", func(t *testing.T) {
		res, err := h.resolve(ctx, call(map[string]any{"theme": "light", "file_type": "markdown"}))
		require.NoError(t, err)
		assert.False(t, res.IsError)

		var out service.Outcome
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		assert.Equal(t, "code", out.Plugin)
		assert.Equal(t, "filetype+theme", out.Rule)
	})

	t.Run("detects from filename", func(t *testing.T) {
		res, err := h.resolve(ctx, call(map[string]any{"theme": "dark", "filename": "main.go"}))
		require.NoError(t, err)

		var out service.Outcome
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		assert.Equal(t, plugin.FileType("go"), out.FileType)
		assert.Equal(t, "code", out.Plugin)
	})

	t.Run("theme required", func(t *testing.T) {
		res, err := h.resolve(ctx, call(nil))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("default fallback", func(t *testing.T) {
		res, err := h.resolve(ctx, call(map[string]any{"theme": "sepia"}))
		require.NoError(t, err)

		var out service.Outcome
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		assert.Equal(t, plugin.DefaultID, out.Plugin)
		assert.Equal(t, "default", out.Rule)
	})
}

func TestRenderTool(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	t.Run("defaults to notty", func(t *testing.T) {
		res, err := h.render(ctx, call(map[string]any{"content": "hello"}))
		require.NoError(t, err)
		assert.Equal(t, "notty:hello", text(t, res))
	})

	t.Run("forced plugin", func(t *testing.T) {
		res, err := h.render(ctx, call(map[string]any{"content": "x", "plugin": "md", "theme": "dark"}))
		require.NoError(t, err)
		assert.Equal(t, "dark:x", text(t, res))
	})

	t.Run("unknown plugin is a tool error", func(t *testing.T) {
		res, err := h.render(ctx, call(map[string]any{"content": "x", "plugin": "nope"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("content required", func(t *testing.T) {
		res, err := h.render(ctx, call(nil))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestStatusTool(t *testing.T) {
	h := newHandlers(t)
	res, err := h.status(context.Background(), call(nil))
	require.NoError(t, err)

	var s plugin.Status
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &s))
	assert.Equal(t, 3, s.Count)
	assert.True(t, s.HasDefault)
	assert.Equal(t, []plugin.Theme{"dark", "light", "notty"}, s.Themes)
}

func TestPluginResource(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	contents, err := h.readPluginResource(ctx, "lens://plugins/code")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", tc.MIMEType)

	var d plugin.Descriptor
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &d))
	assert.Equal(t, "code", d.ID)
	assert.Equal(t, []plugin.FileType{"go", "markdown"}, d.FileTypes)

	_, err = h.readPluginResource(ctx, "lens://plugins/missing")
	assert.ErrorIs(t, err, service.ErrUnknownPlugin)
}

func TestParsePluginURI(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr error
	}{
		{"lens://plugins/markdown", "markdown", nil},
		{"lens://plugins/", "", ErrEmptyID},
		{"lens://plugins/a/b", "", ErrInvalidURI},
		{"other://plugins/a", "", ErrInvalidURI},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parsePluginURI(tt.uri)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigTools(t *testing.T) {
	home := isolate(t)

	h := newHandlers(t)
	ctx := context.Background()

	res, err := h.configSet(ctx, call(map[string]any{"key": "render.theme", "value": "light"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.Equal(t, "light", h.svc.Config().Theme())
	assert.FileExists(t, filepath.Join(home, ".lens", "config.yaml"))

	res, err = h.configGet(ctx, call(map[string]any{"key": "render.theme"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"render.theme":"light"}`, text(t, res))

	res, err = h.configSet(ctx, call(map[string]any{"key": "render.width", "value": "5"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.configGet(ctx, call(map[string]any{"key": "bogus"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	_, err = os.Stat(filepath.Join(".lens", "config.yaml"))
	assert.True(t, os.IsNotExist(err), "global write must not create local config")
}

func TestConfigTools_Local(t *testing.T) {
	isolate(t)

	h := newHandlers(t)
	ctx := context.Background()

	res, err := h.configSet(ctx, call(map[string]any{"key": "render.width", "value": "100", "local": true}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.JSONEq(t, `{"key":"render.width","value":"100","scope":"local"}`, text(t, res))
	assert.FileExists(t, filepath.Join(".lens", "config.yaml"))
	assert.Equal(t, 100, h.svc.Config().Width())

	// Once the local file exists the cascade reads it without the flag
	res, err = h.configGet(ctx, call(map[string]any{"key": "render.width"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"render.width":"100"}`, text(t, res))
}

func TestConfigTools_DefaultPlugin(t *testing.T) {
	isolate(t)

	h := newHandlers(t)
	ctx := context.Background()
	resolveSepia := func() service.Outcome {
		t.Helper()
		res, err := h.resolve(ctx, call(map[string]any{"theme": "sepia"}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))
		var out service.Outcome
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		return out
	}

	assert.Equal(t, plugin.DefaultID, resolveSepia().Plugin)

	res, err := h.configSet(ctx, call(map[string]any{"key": "render.default_plugin", "value": "md"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	out := resolveSepia()
	assert.Equal(t, "md", out.Plugin)
	assert.Equal(t, "default", out.Rule)

	res, err = h.listPlugins(ctx, call(nil))
	require.NoError(t, err)
	var summaries []pluginSummary
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &summaries))
	assert.True(t, summaries[0].Default)
	assert.False(t, summaries[2].Default)
}

// Run with -race: the MCP server dispatches tool calls concurrently.
func TestConfigTools_ConcurrentRender(t *testing.T) {
	isolate(t)

	h := newHandlers(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			theme := "dark"
			if i%2 == 0 {
				theme = "light"
			}
			res, err := h.configSet(ctx, call(map[string]any{"key": "render.theme", "value": theme}))
			assert.NoError(t, err)
			assert.NotNil(t, res)
		}()
		go func() {
			defer wg.Done()
			res, err := h.render(ctx, call(map[string]any{"content": "x", "filename": "main.go", "theme": "dark"}))
			assert.NoError(t, err)
			assert.Equal(t, "dark:x", text(t, res))
		}()
	}
	wg.Wait()
	assert.Contains(t, []string{"dark", "light"}, h.svc.Config().Theme())
}

func TestPluginDisableTool(t *testing.T) {
	ctx := context.Background()

	t.Run("runtime only", func(t *testing.T) {
		isolate(t)
		h := newHandlers(t)

		res, err := h.pluginDisable(ctx, call(map[string]any{"id": "code"}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))

		var out disableResult
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		assert.False(t, out.Saved)
		assert.Equal(t, []string{"md", plugin.DefaultID}, out.Plugins)
		assert.NoFileExists(t, filepath.Join(os.Getenv("HOME"), ".lens", "config.yaml"))

		res, err = h.resolve(ctx, call(map[string]any{"theme": "dark", "file_type": "go"}))
		require.NoError(t, err)
		var o service.Outcome
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &o))
		assert.Equal(t, "md", o.Plugin)
		assert.Equal(t, "theme", o.Rule)
	})

	t.Run("unknown plugin", func(t *testing.T) {
		isolate(t)
		h := newHandlers(t)

		res, err := h.pluginDisable(ctx, call(map[string]any{"id": "nope"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("id required", func(t *testing.T) {
		h := newHandlers(t)
		res, err := h.pluginDisable(ctx, call(nil))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("saved survives reload", func(t *testing.T) {
		home := isolate(t)
		h := newHandlers(t)

		res, err := h.pluginDisable(ctx, call(map[string]any{"id": "md", "save": true}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))
		assert.FileExists(t, filepath.Join(home, ".lens", "config.yaml"))
		assert.Equal(t, []string{"md"}, h.svc.Config().Disabled())

		res, err = h.reload(ctx, call(nil))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))

		var out reloadResult
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
		assert.Equal(t, []string{"code", plugin.DefaultID}, out.Plugins)
		assert.Equal(t, []string{"md"}, out.Disabled)
		assert.Equal(t, "global", out.Scope)
	})
}

func TestReloadTool(t *testing.T) {
	isolate(t)
	h := newHandlers(t)
	ctx := context.Background()

	_, err := h.pluginDisable(ctx, call(map[string]any{"id": "md"}))
	require.NoError(t, err)
	require.False(t, h.svc.Registry().Has("md"))

	res, err := h.reload(ctx, call(nil))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var out reloadResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, []string{"md", "code", plugin.DefaultID}, out.Plugins)
	assert.Empty(t, out.Disabled)
	assert.Equal(t, plugin.DefaultID, out.Default)
}

func TestGuideTool(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	res, err := h.getGuide(ctx, call(map[string]any{"topic": "resolve"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "Resolution rules")

	res, err = h.getGuide(ctx, call(map[string]any{"topic": "nope"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "available_topics")
}

func TestNewServer(t *testing.T) {
	h := newHandlers(t)
	assert.NotNil(t, NewServer(h.svc))
}
