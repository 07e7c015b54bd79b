package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"   __           ", "#818cf8"},
	{"  / _|___  __ _ ", "#a78bfa"},
	{" |  _(_-< / _` |", "#c084fc"},
	{" |_| /__/ \\__, |", "#e879f9"},
	{"          |___/ ", "#f472b6"},
}

// PrintBanner writes the fsg banner with a violet gradient.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Verdict colors a pass/fail word. The Ascii profile yields plain text.
func Verdict(p termenv.Profile, ok bool) string {
	if ok {
		return p.String("PASS").Foreground(p.Color("#22c55e")).Bold().String()
	}
	return p.String("FAIL").Foreground(p.Color("#ef4444")).Bold().String()
}
