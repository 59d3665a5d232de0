// Package listing renders decoded instructions with their offset and machine code.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/doichev-kostia/performance-aware-programming/sim8086/pkg/decoder"
)

const (
	offsetColor = "\x1b[33m"
	resetColor  = "\x1b[m"
)

// Line is one row of a listing.
type Line struct {
	Offset int
	Hex    string
	Text   string
	Size   int
}

type Options struct {
	// Color highlights the offset column with ANSI escapes.
	Color bool
}

func Lines(instructions []decoder.Instruction) []Line {
	lines := make([]Line, 0, len(instructions))
	for _, instruction := range instructions {
		hexParts := make([]string, 0, len(instruction.Bytes))
		for _, b := range instruction.Bytes {
			hexParts = append(hexParts, fmt.Sprintf("%02X", b))
		}

		lines = append(lines, Line{
			Offset: instruction.Offset,
			Hex:    strings.Join(hexParts, " "),
			Text:   instruction.String(),
			Size:   len(instruction.Bytes),
		})
	}
	return lines
}

// Write prints the header followed by one "offset  hex  text" row per line.
// The instruction text is left unmarked so the listing stays readable next to nasm output.
func Write(w io.Writer, lines []Line, opts Options) error {
	if _, err := io.WriteString(w, decoder.Header); err != nil {
		return err
	}

	for _, line := range lines {
		offset := fmt.Sprintf("%04x", line.Offset)
		if opts.Color {
			offset = offsetColor + offset + resetColor
		}

		// six bytes is the longest MOV encoding: 17 columns of hex
		if _, err := fmt.Fprintf(w, "%s  %-17s  %s\n", offset, line.Hex, line.Text); err != nil {
			return err
		}
	}
	return nil
}

func Render(lines []Line, opts Options) string {
	var builder strings.Builder
	// strings.Builder never fails to write
	_ = Write(&builder, lines, opts)
	return builder.String()
}
