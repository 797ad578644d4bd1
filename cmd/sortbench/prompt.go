package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// Prompter reads one line of user input after printing label.
type Prompter interface {
	Prompt(label string) (string, error)
	Close() error
}

// newPrompter returns a line editor on a terminal and a plain line reader
// when stdin is piped.
func newPrompter() Prompter {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		return &linePrompter{state: state}
	}
	return newReaderPrompter(os.Stdin, os.Stdout)
}

type linePrompter struct {
	state *liner.State
}

func (l *linePrompter) Prompt(label string) (string, error) {
	line, err := l.state.Prompt(label)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if line != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

func (l *linePrompter) Close() error {
	return l.state.Close()
}

type readerPrompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newReaderPrompter(in io.Reader, out io.Writer) *readerPrompter {
	return &readerPrompter{sc: bufio.NewScanner(in), out: out}
}

func (r *readerPrompter) Prompt(label string) (string, error) {
	fmt.Fprint(r.out, label)
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (r *readerPrompter) Close() error { return nil }
