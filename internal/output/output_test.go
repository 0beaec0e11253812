// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"auto", ColorAuto},
		{"", ColorAuto},
		{"always", ColorAlways},
		{"NEVER", ColorNever},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestResolveColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, ResolveColors(ColorAlways, false))
	assert.False(t, ResolveColors(ColorAuto, true))

	os.Unsetenv("NO_COLOR")
	t.Setenv("TERM", "dumb")
	assert.False(t, ResolveColors(ColorAuto, true))

	t.Setenv("TERM", "xterm-256color")
	assert.True(t, ResolveColors(ColorAuto, true))
	assert.False(t, ResolveColors(ColorAuto, false))
	assert.False(t, ResolveColors(ColorNever, true))
}

func TestPrinterPlain(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinterWithWriters(&out, &errOut, false)

	p.Info("Searching arXiv for: '%s'", "graphs")
	p.Success("done")
	p.Warning("Invalid categories: %s", "xx.YY")
	p.Error("boom")
	p.Block("line without newline")

	assert.Equal(t, "Searching arXiv for: 'graphs'\ndone\nline without newline\n", out.String())
	assert.Equal(t, "Warning: Invalid categories: xx.YY\nError: boom\n", errOut.String())
	assert.Equal(t, "x", p.Bold("x"))
}

func TestPrinterColors(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinterWithWriters(&out, &out, true)

	p.Success("ok")

	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "ok")
}

func TestTableRendersRows(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"Code", "Description"})
	table.AddRow("cs.AI", "Artificial Intelligence")
	table.AddRow("cs.LG", "Machine Learning")

	require.NoError(t, table.Render())

	got := buf.String()
	assert.Contains(t, got, "cs.AI")
	assert.Contains(t, got, "Machine Learning")
	assert.Less(t, strings.Index(got, "cs.AI"), strings.Index(got, "cs.LG"))
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, false)
	fn := p.Func()

	fn("paper.pdf", 512*1024, 1024*1024)
	assert.Contains(t, buf.String(), "\rpaper.pdf:  50% |")
	assert.NotContains(t, buf.String(), "\n")

	fn("paper.pdf", 1024*1024, 1024*1024)
	assert.True(t, strings.HasSuffix(buf.String(), "1.0MB/1.0MB\n"))

	buf.Reset()
	fn("unknown.pdf", 10, 0)
	assert.Empty(t, buf.String())
}
