package detect

import (
	"testing"

	"github.com/jpl-au/lens/plugin"
	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		file string
		want plugin.FileType
	}{
		{"markdown", "README.md", "markdown"},
		{"upper case extension", "NOTES.MD", "markdown"},
		{"csv", "data/report.csv", "csv"},
		{"tsv", "report.tsv", "tsv"},
		{"patch", "fix.patch", "patch"},
		{"yaml short", "config.yml", "yaml"},
		{"shell", "build.sh", "shell"},
		{"dockerfile", "Dockerfile", "dockerfile"},
		{"makefile", "Makefile", "makefile"},
		{"go via chroma", "main.go", "go"},
		{"python via chroma", "script.py", "python"},
		{"javascript alias", "app.js", "javascript"},
		{"unknown", "blob.zzqq", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromName(tt.file, nil))
		})
	}
}

func TestOverrides(t *testing.T) {
	overrides := []Override{
		{Pattern: "*.mdx", FileType: "text"},
		{Pattern: "docs/**/*.md", FileType: "text"},
		{Pattern: "*.md", FileType: "markdown"},
	}

	assert.Equal(t, plugin.FileType("text"), FromName("page.mdx", overrides))
	assert.Equal(t, plugin.FileType("text"), FromName("docs/a/b/guide.md", overrides))
	assert.Equal(t, plugin.FileType("markdown"), FromName("README.md", overrides))

	t.Run("malformed pattern skipped", func(t *testing.T) {
		bad := []Override{{Pattern: "[", FileType: "text"}}
		assert.Equal(t, plugin.FileType("csv"), FromName("a.csv", bad))
	})
}

func TestFromContent(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, plugin.FileType(""), FromContent(nil))
		assert.Equal(t, plugin.FileType(""), FromContent([]byte("  \n")))
	})

	t.Run("git diff", func(t *testing.T) {
		src := "diff --git a/x b/x\n--- a/x\n+++ b/x\n@@ -1 +1 @@\n-a\n+b\n"
		assert.Equal(t, plugin.FileType("diff"), FromContent([]byte(src)))
	})

	t.Run("unified diff", func(t *testing.T) {
		src := "--- old.txt\n+++ new.txt\n@@ -1 +1 @@\n-a\n+b\n"
		assert.Equal(t, plugin.FileType("diff"), FromContent([]byte(src)))
	})

	t.Run("shebang", func(t *testing.T) {
		src := "#!/bin/bash\necho hello\n"
		assert.Equal(t, plugin.FileType("shell"), FromContent([]byte(src)))
	})
}

func TestDetect(t *testing.T) {
	t.Run("name wins over content", func(t *testing.T) {
		got := Detect("notes.md", []byte("#!/bin/bash\n"), nil)
		assert.Equal(t, plugin.FileType("markdown"), got)
	})

	t.Run("content when name unknown", func(t *testing.T) {
		got := Detect("changes", []byte("--- a\n+++ b\n"), nil)
		assert.Equal(t, plugin.FileType("diff"), got)
	})

	t.Run("content when no name", func(t *testing.T) {
		got := Detect("", []byte("diff --git a/x b/x\n"), nil)
		assert.Equal(t, plugin.FileType("diff"), got)
	})
}
