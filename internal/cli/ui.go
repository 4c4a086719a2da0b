package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	errs "github.com/excalidocker/excalidocker/pkg/errors"
	"github.com/excalidocker/excalidocker/pkg/pipeline"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleDim   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue = lipgloss.NewStyle().Foreground(colorWhite)
	styleError = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// statusOut receives human-oriented status lines. Stdout is kept for the
// diagram, the graph and other machine-readable output.
var statusOut io.Writer = os.Stderr

func status(line string) { fmt.Fprintln(statusOut, line) }

func printSuccess(format string, args ...any) {
	status(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	status(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	status("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written file.
func printFile(path string) {
	status("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	status(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints diagram statistics on a single line.
func printStats(s pipeline.Stats) {
	status("  " + formatStats(s))
}

func formatStats(s pipeline.Stats) string {
	parts := []string{
		plural(s.Services, "service"),
		plural(s.Ports, "port"),
	}
	if s.Connectors > 0 {
		parts = append(parts, plural(s.Connectors, "connection"))
	}
	if s.Dangling > 0 {
		parts = append(parts, plural(s.Dangling, "unknown dependency", "unknown dependencies"))
	}
	parts = append(parts, plural(s.Elements, "element"))

	rendered := make([]string, len(parts))
	for i, p := range parts {
		rendered[i] = styleDim.Render(p)
	}
	return strings.Join(rendered, styleDim.Render(" · "))
}

// plural formats n with the singular noun, or with the plural form
// (noun+"s" unless given) when n != 1.
func plural(n int, noun string, pluralForm ...string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	if len(pluralForm) > 0 {
		return fmt.Sprintf("%d %s", n, pluralForm[0])
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// FormatError renders err for the terminal: the user-facing message behind
// a red cross, followed by a dimmed hint when the error code has one.
func FormatError(err error) string {
	out := styleIconError.Render(iconError) + " " + styleError.Render(errs.UserMessage(err))
	if hint := errs.Hint(err); hint != "" {
		out += "\n  " + styleDim.Render(hint)
	}
	return out
}
