// Package output renders command results for terminals, CI logs and
// machine consumers.
//
// A Renderer is created per command invocation. In auto mode it picks
// styled text for an interactive terminal and markdown otherwise, so
// piping output into a file or an agent produces readable plain text.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how a Renderer formats output.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeJSON     Mode = "json"
	ModeGitHub   Mode = "github"
	ModeMarkdown Mode = "markdown"
)

// DefaultWidth is used when the terminal width cannot be detected.
const DefaultWidth = 100

// Modes returns every accepted mode name.
func Modes() []Mode {
	return []Mode{ModeAuto, ModeText, ModeJSON, ModeGitHub, ModeMarkdown}
}

// ParseMode validates a mode name. The empty string means auto.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeAuto, nil
	}
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected auto, text, json, github or markdown)", s)
}

// Renderer writes formatted output to a pair of writers.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	width  int
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	isTTY := false
	width := DefaultWidth
	if f, ok := out.(*os.File); ok {
		fd := int(f.Fd())
		isTTY = term.IsTerminal(fd)
		if isTTY {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				width = w
			}
		}
	}
	r := NewRendererWithTTY(out, errOut, isTTY, mode)
	r.width = width
	return r
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Tests use it to exercise both paths.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	lr := lipgloss.NewRenderer(out)
	if !isTTY || termenv.EnvNoColor() {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		width:  DefaultWidth,
		styles: NewStyles(lr),
	}
}

// Mode returns the configured mode, which may be auto.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// EffectiveMode resolves auto to text on a terminal and markdown elsewhere.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Width returns the usable output width in cells.
func (r *Renderer) Width() int {
	return r.width
}

// SetWidth overrides the detected width.
func (r *Renderer) SetWidth(w int) {
	if w > 0 {
		r.width = w
	}
}

// Styles returns the style set bound to this renderer's color profile.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the diagnostic output writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to the primary output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to the primary output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Success prints a success line.
func (r *Renderer) Success(msg string) {
	if r.EffectiveMode() == ModeText {
		r.Println(r.styles.Success.Render(IconSuccess + " " + msg))
		return
	}
	r.Println(msg)
}

// Warn prints a warning line to the error writer.
func (r *Renderer) Warn(msg string) {
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(IconWarning+" "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "warning: "+msg)
}

// Header prints a section header at the given level.
func (r *Renderer) Header(level int, title string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(strings.Repeat("#", level) + " " + title)
		return
	}
	if level <= 1 {
		r.Println(r.styles.Header1.Render(title))
		return
	}
	r.Println(r.styles.Header2.Render(title))
}

// StatusLine prints a path with a status icon and optional detail.
func (r *Renderer) StatusLine(name, status, detail string) {
	icon := IconSuccess
	style := r.styles.Success
	switch status {
	case "error":
		icon, style = IconError, r.styles.Error
	case "warning":
		icon, style = IconWarning, r.styles.Warning
	case "skipped":
		icon, style = IconSkipped, r.styles.Muted
	}
	line := style.Render(icon) + " " + name
	if detail != "" {
		line += " " + r.styles.Muted.Render(detail)
	}
	r.Println("  " + line)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
