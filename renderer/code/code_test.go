package code

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jpl-au/lens/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor(t *testing.T) {
	d := Descriptor()
	assert.Equal(t, ID, d.ID)
	assert.True(t, d.SupportsFileType("go"))
	assert.False(t, d.SupportsFileType("markdown"))
}

func TestRender(t *testing.T) {
	src := []byte("package main\n\nfunc main() {}\n")

	t.Run("notty is uncoloured", func(t *testing.T) {
		var buf bytes.Buffer
		err := Renderer{}.Render(context.Background(), &buf, src, plugin.RenderOptions{Theme: "notty", FileType: "go"})
		require.NoError(t, err)
		assert.Equal(t, string(src), buf.String())
	})

	t.Run("dark adds escapes", func(t *testing.T) {
		var buf bytes.Buffer
		err := Renderer{}.Render(context.Background(), &buf, src, plugin.RenderOptions{Theme: "dark", Filename: "main.go"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "\x1b[")
		assert.Contains(t, buf.String(), "main")
	})

	t.Run("unknown language falls back", func(t *testing.T) {
		var buf bytes.Buffer
		err := Renderer{}.Render(context.Background(), &buf, []byte("plain words"), plugin.RenderOptions{Theme: "notty", FileType: "nope"})
		require.NoError(t, err)
		assert.Equal(t, "plain words", strings.TrimRight(buf.String(), "\n"))
	})
}
