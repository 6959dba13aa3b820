package notify

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/dw/dw"
)

var severityStyles = map[dw.Severity]lipgloss.Style{
	dw.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	dw.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	dw.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

var titleCaser = cases.Title(language.English)

// Console is a notification sink for hosts without log_tool: one
// severity-tagged line per message on the given writer. Notifications go to
// stderr by default so the verbatim child echo on stdout stays clean.
type Console struct {
	Out io.Writer

	// Width truncates the message to a display width when positive.
	Width int

	// Color enables lipgloss styling of the severity tag; keep it off when
	// the writer is not a terminal.
	Color bool
}

// NewConsole returns a console sink.
func NewConsole(out io.Writer, color bool) *Console {
	return &Console{Out: out, Color: color}
}

// Append writes one severity-tagged line.
func (c *Console) Append(message string, severity dw.Severity) error {
	label := titleCaser.String(strings.ToLower(severity.String()))
	if c.Color {
		if style, ok := severityStyles[severity]; ok {
			label = style.Render(label)
		}
	}
	if c.Width > 0 {
		message = runewidth.Truncate(message, c.Width, "…")
	}
	_, err := fmt.Fprintf(c.Out, "%s: %s\n", label, message)
	return err
}
