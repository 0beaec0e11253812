// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output formats CLI messages, tables, and download progress for
// the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ColorMode selects when output is colored.
type ColorMode int

const (
	// ColorAuto colors output when the terminal supports it.
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on.
	ColorAlways
	// ColorNever forces colors off.
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses auto, always, or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides whether to color output. In auto mode NO_COLOR and
// TERM=dumb turn colors off; otherwise isTerminal decides.
func ResolveColors(mode ColorMode, isTerminal bool) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return isTerminal
	}
}

// Printer writes user-facing messages. Info, Success, and Print go to out;
// Warning and Error go to err.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter returns a Printer on stdout and stderr.
func NewPrinter(useColors bool) *Printer {
	return NewPrinterWithWriters(os.Stdout, os.Stderr, useColors)
}

// NewPrinterWithWriters returns a Printer on the given writers.
func NewPrinterWithWriters(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// Out returns the writer for regular output.
func (p *Printer) Out() io.Writer { return p.out }

// Colors reports whether the printer colors output.
func (p *Printer) Colors() bool { return p.useColors }

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Info prints an informational message.
func (p *Printer) Info(format string, args ...any) {
	p.paint(color.FgCyan).Fprintf(p.out, format+"\n", args...)
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...any) {
	p.paint(color.FgGreen).Fprintf(p.out, format+"\n", args...)
}

// Warning prints a warning to the error stream.
func (p *Printer) Warning(format string, args ...any) {
	p.paint(color.FgYellow).Fprintf(p.err, "Warning: "+format+"\n", args...)
}

// Error prints an error to the error stream.
func (p *Printer) Error(format string, args ...any) {
	p.paint(color.FgRed).Fprintf(p.err, "Error: "+format+"\n", args...)
}

// Print prints a plain message.
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Block prints preformatted text as is.
func (p *Printer) Block(text string) {
	fmt.Fprint(p.out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(p.out)
	}
}

// Bold returns text in bold when colors are on.
func (p *Printer) Bold(text string) string {
	return p.paint(color.Bold).Sprint(text)
}
