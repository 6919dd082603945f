package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	t.Run("added line", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("old.txt", "line one\nline two\n")
		env.writeFile("new.txt", "line one\nline two\nline three\n")

		out := env.run("diff", "old.txt", "new.txt")
		env.contains(out, "--- old.txt")
		env.contains(out, "+++ new.txt")
		env.contains(out, "+ line three")
	})

	t.Run("removed line", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("old.txt", "keep\ndrop\n")
		env.writeFile("new.txt", "keep\n")

		out := env.run("diff", "old.txt", "new.txt")
		env.contains(out, "- drop")
		env.contains(out, "  keep")
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("a.md", "# A\n")
		env.writeFile("b.md", "# B\n")

		var r struct {
			Old   string `json:"old"`
			New   string `json:"new"`
			Diff  string `json:"diff"`
			Added int    `json:"added"`
		}
		require.NoError(t, json.Unmarshal([]byte(env.runStdout("diff", "a.md", "b.md", "-o", "json")), &r))
		assert.Equal(t, "a.md", r.Old)
		assert.Equal(t, "b.md", r.New)
		assert.Contains(t, r.Diff, "+ # B")
		assert.Equal(t, 1, r.Added)
	})

	t.Run("stdin as old side", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("new.txt", "beta\n")

		out := env.runStdin("alpha\n", "diff", "-", "new.txt")
		env.contains(out, "- alpha")
		env.contains(out, "+ beta")
	})
}

func TestDiff_NoChanges(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile("a.txt", "same\n")
	env.writeFile("b.txt", "same\n")

	out := env.run("diff", "a.txt", "b.txt")
	env.equals(out, "")
}

func TestDiff_ForcedPlugin(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile("a.txt", "one\n")
	env.writeFile("b.txt", "two\n")

	out := env.run("diff", "a.txt", "b.txt", "--plugin", "default")
	env.contains(out, "+ two")
}

func TestDiff_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		env := newTestEnv(t)
		env.writeFile("a.txt", "one\n")

		_, err := env.runErr("diff", "a.txt", "missing.txt")
		assert.Error(t, err)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("diff", "a.txt")
		assert.Error(t, err)
	})
}
