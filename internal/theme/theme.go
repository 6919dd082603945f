// Package theme turns the configured theme name into the theme a request
// is resolved with, and offers an interactive picker over the themes the
// registered plugins declare.
package theme

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/jpl-au/lens/plugin"
	"github.com/muesli/termenv"
)

// Built-in theme names.
const (
	Auto  = "auto"
	Dark  = plugin.Theme("dark")
	Light = plugin.Theme("light")
	NoTTY = plugin.Theme("notty")
)

// ErrNoThemes is returned by Pick when there is nothing to choose from.
var ErrNoThemes = errors.New("no themes available")

// hasDarkBackground queries the terminal. Replaced in tests.
var hasDarkBackground = termenv.HasDarkBackground

// Resolve maps a requested theme to a concrete one. An empty or "auto"
// request becomes notty when output is not a terminal, otherwise dark or
// light depending on the terminal background. Any other name is returned
// unchanged; the registry decides whether a plugin supports it.
func Resolve(requested string, isTTY bool) plugin.Theme {
	if requested != "" && requested != Auto {
		return plugin.Theme(requested)
	}
	if !isTTY {
		return NoTTY
	}
	if hasDarkBackground() {
		return Dark
	}
	return Light
}

// Pick asks the user to choose one of themes. The current theme is
// preselected when present.
func Pick(themes []plugin.Theme, current plugin.Theme) (plugin.Theme, error) {
	opts := options(themes, current)
	if len(opts) == 0 {
		return "", ErrNoThemes
	}

	selected := string(current)
	err := huh.NewSelect[string]().
		Title("Theme").
		Description("Themes declared by the registered plugins").
		Options(opts...).
		Value(&selected).
		Run()
	if err != nil {
		return "", fmt.Errorf("theme picker: %w", err)
	}
	return plugin.Theme(selected), nil
}

// options lists auto first, then themes in the order given, marking the
// current one.
func options(themes []plugin.Theme, current plugin.Theme) []huh.Option[string] {
	if len(themes) == 0 {
		return nil
	}
	names := []string{Auto}
	for _, t := range themes {
		if !slices.Contains(names, string(t)) {
			names = append(names, string(t))
		}
	}

	opts := make([]huh.Option[string], 0, len(names))
	for _, n := range names {
		label := n
		if n == string(current) {
			label += " (current)"
		}
		opts = append(opts, huh.NewOption(label, n).Selected(n == string(current)))
	}
	return opts
}
