package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/doichev-kostia/performance-aware-programming/sim8086/pkg/decoder"
)

type fdWriter interface {
	Fd() uintptr
}

// isTerminal reports whether w is an *os.File attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

type debugger struct {
	mu      sync.Mutex
	enabled bool
	out     io.Writer
	printer *pp.PrettyPrinter
}

func newDebugger(enabled bool, out io.Writer) *debugger {
	printer := pp.New()
	printer.SetOutput(out)
	printer.SetColoringEnabled(isTerminal(out))
	return &debugger{enabled: enabled, out: out, printer: printer}
}

func (d *debugger) debugf(format string, args ...any) {
	if d.enabled {
		d.mu.Lock()
		defer d.mu.Unlock()
		fmt.Fprintf(d.out, format+"\n", args...)
	}
}

func (d *debugger) dump(filename string, instructions []decoder.Instruction) {
	if !d.enabled {
		return
	}

	d.debugf("--- %s: %d instructions", filename, len(instructions))
	for _, instruction := range instructions {
		d.printer.Println(instruction)
	}
}
