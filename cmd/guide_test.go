package cmd

import "testing"

func TestGuide(t *testing.T) {
	t.Run("main guide", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("guide")
		env.contains(out, "lens")
		env.contains(out, "plugin")
	})

	t.Run("lists available on not found", func(t *testing.T) {
		env := newTestEnv(t)

		out, _ := env.runErr("guide", "nonexistent")
		env.contains(out, "Available:")
		env.contains(out, "resolve")
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.runStdout("guide", "themes", "-o", "json")
		env.contains(out, `"topic":"themes"`)
		env.contains(out, `"content"`)
	})
}

func TestGuide_Topics(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		contain string
	}{
		{"view", "view", "lens view"},
		{"resolve", "resolve", "lens resolve"},
		{"themes", "themes", "lens theme"},
		{"config", "config", "lens config"},
		{"mcp", "mcp", "lens serve"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			out := env.run("guide", tc.topic)
			env.contains(out, tc.contain)
		})
	}
}

func TestGuide_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("guide", "nonexistent")
	if err == nil {
		t.Error("Guide(nonexistent) = nil, want error")
	}
}
