// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ColorMode controls when ANSI color codes are used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when writing to a terminal and NO_COLOR is unset
	ColorAlways                  // always use colors
	ColorNever                   // never use colors
)

// ParseColorMode maps the names auto, always and never to a ColorMode.
// Unknown names select ColorAuto.
func ParseColorMode(name string) ColorMode {
	switch name {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

type palette struct {
	bold     string
	yellow   string
	boldRed  string
	boldBlue string
	boldCyan string
	reset    string
}

var ansiPalette = palette{
	bold:     "\033[1m",
	yellow:   "\033[33m",
	boldRed:  "\033[1;31m",
	boldBlue: "\033[1;34m",
	boldCyan: "\033[1;36m",
	reset:    "\033[0m",
}

func choosePalette(mode ColorMode, f *os.File) palette {
	switch mode {
	case ColorAlways:
		return ansiPalette
	case ColorNever:
		return palette{}
	}
	if os.Getenv("NO_COLOR") != "" || f == nil {
		return palette{}
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return palette{}
	}
	return ansiPalette
}
