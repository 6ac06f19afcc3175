package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// terminal is implemented by writers that wrap another writer, like the printer, and know if it is
// a terminal.
type terminal interface {
	Terminal() bool
}

// IsTerminal checks if the given writer is a file connected to a terminal.
func IsTerminal(writer io.Writer) bool {
	switch typed := writer.(type) {
	case *os.File:
		return isatty.IsTerminal(typed.Fd()) || isatty.IsCygwinTerminal(typed.Fd())
	case terminal:
		return typed.Terminal()
	}
	return false
}
