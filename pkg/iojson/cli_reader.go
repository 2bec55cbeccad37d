package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// DecodeFunc decodes input read by a FileReader. name is the file path, or
// "-" for stdin.
type DecodeFunc[T any] func(r io.Reader, name string) (T, error)

// FileReader reads a value from the --file flag or piped stdin.
type FileReader[T any] struct {
	fileFlagValue string

	// Decode overrides JSON decoding, for inputs in other formats.
	Decode DecodeFunc[T]

	stdin io.Reader
	isTTY func() bool
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to input file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// SetFile sets the input path as if --file had been passed.
func (fr *FileReader[T]) SetFile(path string) {
	fr.fileFlagValue = path
}

// File returns the input path, empty when reading stdin.
func (fr *FileReader[T]) File() string {
	return fr.fileFlagValue
}

func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T
	name := "-"

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
		name = fr.fileFlagValue
	} else {
		if fr.stdinIsTerminal() {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe input")
		}
		reader = fr.stdinReader()
	}

	if fr.Decode != nil {
		return fr.Decode(reader, name)
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}

func (fr *FileReader[T]) stdinReader() io.Reader {
	if fr.stdin != nil {
		return fr.stdin
	}
	return os.Stdin
}

func (fr *FileReader[T]) stdinIsTerminal() bool {
	if fr.isTTY != nil {
		return fr.isTTY()
	}
	if fr.stdin != nil {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}
