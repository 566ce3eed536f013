// Package printer writes human-facing command output with status prefixes.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/colonyops/ticktock/internal/core/styles"
)

type ctxKey struct{}

// Printer formats command output for a terminal. Colors are downsampled to
// what the writer supports, so plain files and pipes get plain text.
type Printer struct {
	out io.Writer
}

// New creates a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stdout.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) line(prefix lipgloss.Style, mark, format string, args ...any) {
	_, _ = lipgloss.Fprintln(p.out, prefix.Render(mark)+" "+fmt.Sprintf(format, args...))
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
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Section writes a bold heading.
func (p *Printer) Section(title string) {
	_, _ = lipgloss.Fprintln(p.out, "\n"+styles.TitleStyle.Render(title))
}
