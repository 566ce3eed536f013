package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrTerminalInput means no --file was given and stdin is an interactive
// terminal, so there is nothing to read.
var ErrTerminalInput = errors.New("no input: pass --file or pipe JSON on stdin")

// FileReader decodes one JSON document of type T from the path given with
// its --file flag, or from stdin. Unknown fields are rejected.
type FileReader[T any] struct {
	path string

	// Stdin replaces os.Stdin.
	Stdin io.Reader
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "read JSON from `PATH` instead of stdin",
		Destination: &fr.path,
		TakesFile:   true,
	}
}

// Source names where Read takes input from.
func (fr *FileReader[T]) Source() string {
	if fr.path != "" {
		return fr.path
	}
	return "stdin"
}

func (fr *FileReader[T]) open() (io.Reader, func(), error) {
	if fr.path != "" {
		f, err := os.Open(fr.path)
		if err != nil {
			return nil, nil, fmt.Errorf("open file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	in := fr.Stdin
	if in == nil {
		in = os.Stdin
	}
	if f, ok := in.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		return nil, nil, ErrTerminalInput
	}
	return in, func() {}, nil
}

func (fr *FileReader[T]) Read() (T, error) {
	var v T

	r, done, err := fr.open()
	if err != nil {
		return v, err
	}
	defer done()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decode JSON from %s: %w", fr.Source(), err)
	}
	return v, nil
}
