package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Prefixes(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{"success", func(p *Printer) { p.Successf("loaded %d rows", 3) }, "✔ loaded 3 rows\n"},
		{"info", func(p *Printer) { p.Infof("table %s", "epg") }, "• table epg\n"},
		{"warn", func(p *Printer) { p.Warnf("slow") }, "! slow\n"},
		{"error", func(p *Printer) { p.Errorf("bad %q", "x") }, "✘ bad \"x\"\n"},
		{"plain", func(p *Printer) { p.Printf("  Item: %s", "users") }, "  Item: users\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(New(&buf))
			assert.Equal(t, tt.want, ansi.Strip(buf.String()))
		})
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	assert.Same(t, p, Ctx(NewContext(context.Background(), p)))
	assert.NotNil(t, Ctx(context.Background()))
}
