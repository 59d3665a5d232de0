// Package cli wires the decoder to files and the terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/doichev-kostia/performance-aware-programming/sim8086/pkg/decoder"
	"github.com/doichev-kostia/performance-aware-programming/sim8086/pkg/listing"
)

type Cli struct {
	cfg    Config
	stdin  io.Reader
	stdout io.Writer
	debug  *debugger
}

func NewCli(cfg Config, stdin io.Reader, stdout io.Writer, stderr io.Writer) *Cli {
	return &Cli{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		debug:  newDebugger(cfg.Debug, stderr),
	}
}

type result struct {
	filename     string
	instructions []decoder.Instruction
}

// Run decodes every file and prints them in argument order.
// Nothing is printed unless all files decode.
func (c *Cli) Run(ctx context.Context) error {
	results := make([]result, len(c.cfg.Files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Jobs)

	for i, filename := range c.cfg.Files {
		i, filename := i, filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			source, err := c.load(filename)
			if err != nil {
				return err
			}

			instructions, err := decoder.NewDecoder(source).Instructions()
			if err != nil {
				return fmt.Errorf("decode %s: %w", filename, err)
			}
			results[i] = result{filename: filename, instructions: instructions}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	w := bufio.NewWriter(c.stdout)
	for i, r := range results {
		c.debug.dump(r.filename, r.instructions)

		if i > 0 {
			if _, err := w.WriteString("\n"); err != nil {
				return err
			}
		}
		if err := c.write(w, r); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (c *Cli) load(filename string) ([]byte, error) {
	if filename == stdinName {
		source, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return source, nil
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read the file %s: %w", filename, err)
	}
	c.debug.debugf("loaded %s (%d bytes)", filename, len(source))
	return source, nil
}

func (c *Cli) write(w io.Writer, r result) error {
	if c.cfg.HeaderComment || len(c.cfg.Files) > 1 {
		if _, err := fmt.Fprintf(w, "; %s\n", r.filename); err != nil {
			return err
		}
	}

	if c.cfg.Listing {
		return listing.Write(w, listing.Lines(r.instructions), listing.Options{Color: c.useColor()})
	}

	_, err := io.WriteString(w, decoder.Format(r.instructions))
	return err
}

func (c *Cli) useColor() bool {
	switch c.cfg.Color {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return isTerminal(c.stdout)
	}
}

// Main runs the command line program and returns the process exit code.
func Main(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	logger := log.New(stderr, "sim8086: ", 0)

	cfg, err := ParseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Print(err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewCli(cfg, stdin, stdout, stderr).Run(ctx); err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}
