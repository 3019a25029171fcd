package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "remapped returns green", status: StatusRemapped, wantFG: ColorGreen},
		{name: "warning returns yellow", status: StatusWarning, wantFG: ColorYellow},
		{name: "unchanged returns faint", status: StatusUnchanged, wantDim: true},
		{name: "skipped returns faint", status: StatusSkipped, wantDim: true},
		{name: "failed returns bold red", status: StatusFailed, wantBold: true, wantFG: ColorBoldRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestFormatDocumentLine(t *testing.T) {
	line := FormatDocumentLine("players/steve.dat", StatusRemapped, "3 ids")
	assert.Contains(t, line, "d:")
	assert.Contains(t, line, "players/steve.dat")
	assert.Contains(t, line, "remapped")
	assert.Contains(t, line, "(3 ids)")

	long := strings.Repeat("x", 60)
	line = FormatDocumentLine(long, StatusFailed, "")
	assert.Contains(t, line, long+"  ")
	assert.NotContains(t, line, "(")
}

func TestFormatCheckmark(t *testing.T) {
	got := FormatCheckmark("done")
	assert.Contains(t, got, "✔")
	assert.True(t, strings.HasSuffix(got, " done"))
}

func TestTable(t *testing.T) {
	tbl := NewTable("ID", "NAMESPACE").Row("100", "modA").Row("50", "modB")
	assert.Equal(t, 2, tbl.Len())

	out := tbl.String()
	for _, want := range []string{"ID", "NAMESPACE", "100", "modA", "modB"} {
		assert.Contains(t, out, want)
	}
}
