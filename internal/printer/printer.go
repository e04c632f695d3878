// Package printer writes styled, human readable command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/tvconsole/internal/core/styles"
)

type ctxKey struct{}

// Printer prefixes messages with a colored status glyph.
type Printer struct {
	out io.Writer
}

// New returns a printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stdout.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorSuccess), "✔", format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorPrimary), "•", format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorWarning), "!", format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorError), "✘", format, args...)
}

// Printf writes an unprefixed line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Header writes a section title followed by a divider.
func (p *Printer) Header(title string) {
	_, _ = fmt.Fprintln(p.out, styles.CommandHeaderStyle.Render(title))
}

func (p *Printer) line(style lipgloss.Style, glyph string, format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, "%s %s\n", style.Render(glyph), fmt.Sprintf(format, args...))
}
