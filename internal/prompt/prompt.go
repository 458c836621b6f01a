// Package prompt reads whitespace-separated answers for the CLI drivers.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var ErrBadInput = errors.New("prompt: could not read the input")

type Prompter struct {
	in *bufio.Reader
	// Out receives the question. Nil when stdin is not a terminal, so piped
	// input stays quiet.
	Out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in)}
	if IsTerminal(in) {
		p.Out = out
	}
	return p
}

// IsTerminal reports whether r is a terminal file descriptor.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Fields asks question and expects exactly n fields on one line.
func (p *Prompter) Fields(question string, n int) ([]string, error) {
	if p.Out != nil {
		fmt.Fprint(p.Out, question)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return nil, fmt.Errorf("%w: %v", ErrBadInput, err)
	}
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrBadInput, n, len(fields))
	}
	return fields, nil
}
