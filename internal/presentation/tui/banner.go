package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the scrolly banner, one gradient color per line.
func PrintBanner(w io.Writer, profile termenv.Profile) {
	lines := []struct{ text, color string }{
		{`                     _ _       `, "#34d399"},
		{`  ___  ___ _ __ ___ | | |_   _ `, "#2dd4bf"},
		{` / __|/ __| '__/ _ \| | | | | |`, "#22d3ee"},
		{` \__ \ (__| | | (_) | | | |_| |`, "#38bdf8"},
		{` |___/\___|_|  \___/|_|_|\__, |`, "#60a5fa"},
		{`                          |___/ `, "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, profile.String(l.text).Foreground(profile.Color(l.color)))
	}
	fmt.Fprintln(w)
}
