package driver

import (
	"os"

	"github.com/mattn/go-isatty"
)

// UseColor decides whether output to f is coloured. NO_COLOR always wins.
func UseColor(mode ColorMode, f *os.File) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
