package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/spectralint/pkg/lint"
	"github.com/mattn/go-runewidth"
)

// Status icons.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconSkipped = "-"
)

// Styles is the set of lipgloss styles used by text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer, so that color
// output follows the renderer's profile rather than the process stdout.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lr.NewStyle().Bold(true).Underline(true),
		Header2: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Path:    lr.NewStyle().Foreground(lipgloss.Color("7")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("2")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// Severity returns the style for a severity.
func (s *Styles) Severity(sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return s.Error
	case lint.SeverityWarning:
		return s.Warning
	case lint.SeverityInfo:
		return s.Info
	default:
		return s.Muted
	}
}

// SeverityIcon returns the icon for a severity.
func SeverityIcon(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return IconError
	case lint.SeverityWarning:
		return IconWarning
	default:
		return IconInfo
	}
}

// Truncate clips value to width terminal cells, appending "..." when
// there is room for it.
func Truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
