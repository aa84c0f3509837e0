package printer

import (
	"github.com/fatih/color"
)

type ColorPrinter struct {
	Enabled bool
	Success func(format string, a ...interface{}) string
	Error   func(format string, a ...interface{}) string
	Warning func(format string, a ...interface{}) string
	Info    func(format string, a ...interface{}) string
	Debug   func(format string, a ...interface{}) string
}

// NewColorPrinter returns a printer; with enabled=false every func is a plain Sprintf.
func NewColorPrinter(enabled bool) *ColorPrinter {
	mk := func(attr color.Attribute) func(string, ...interface{}) string {
		c := color.New(attr)
		if !enabled {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &ColorPrinter{
		Enabled: enabled,
		Success: mk(color.FgGreen),
		Error:   mk(color.FgRed),
		Warning: mk(color.FgYellow),
		Info:    mk(color.FgBlue),
		Debug:   mk(color.FgCyan),
	}
}
